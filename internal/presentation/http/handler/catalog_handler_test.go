package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonitraders/invoicify-api/internal/application/service"
	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	"github.com/sonitraders/invoicify-api/pkg/apperror"
)

type stubFetcher struct {
	items []entity.CatalogItem
	err   error
}

func (f *stubFetcher) FetchItems(ctx context.Context) ([]entity.CatalogItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func catalogRouter(fetcher *stubFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(service.NewCatalogService(fetcher))
	r := gin.New()
	r.GET("/catalog/items", h.List)
	return r
}

func TestCatalogListOffersOnlyInStockItemsByDefault(t *testing.T) {
	router := catalogRouter(&stubFetcher{items: []entity.CatalogItem{
		{ID: "1", Name: "Widget", Price: decimal.NewFromInt(50), TotalStock: decimal.NewFromInt(10)},
		{ID: "2", Name: "Gadget", Price: decimal.NewFromInt(20), TotalStock: decimal.NewFromInt(5), Sold: decimal.NewFromInt(5)},
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/items", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []entity.CatalogItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Widget", body.Data[0].Name)

	// The unfiltered view is opt-in.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/catalog/items?all=true", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestCatalogListUpstreamOutageReturnsBadGateway(t *testing.T) {
	router := catalogRouter(&stubFetcher{err: apperror.ErrUpstreamUnavailable})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/items", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

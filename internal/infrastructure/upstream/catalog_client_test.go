package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonitraders/invoicify-api/pkg/apperror"
)

func TestFetchItemsWrappedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"id":"p1","name":"Widget","price":50,"totalStock":10,"sold":2,"returned":1},
			{"id":2,"name":"Gadget","sellingPrice":"19.99","totalStock":"5","sold":"5","returned":"0"}
		]}`))
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL, time.Second)
	items, err := client.FetchItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "50", items[0].Price.String())
	assert.True(t, items[0].InStock())
	assert.Equal(t, "9", items[0].Available().String())

	// Numeric ID and string numerics are normalized; price falls back to
	// sellingPrice when price is absent.
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, "19.99", items[1].Price.String())
	assert.False(t, items[1].InStock())
}

func TestFetchItemsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"p1","name":"Widget","unitPrice":25,"totalStock":3}]`))
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL, time.Second)
	items, err := client.FetchItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "25", items[0].Price.String())
}

func TestFetchItemsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL, time.Second)
	_, err := client.FetchItems(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUpstreamUnavailable)
	assert.Equal(t, http.StatusBadGateway, apperror.GetAppError(err).Code)
}

func TestFetchItemsCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewCatalogClient(srv.URL, time.Second)
	_, err := client.FetchItems(ctx)
	assert.Error(t, err)
}

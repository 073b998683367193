package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	"github.com/sonitraders/invoicify-api/pkg/apperror"
)

// CatalogClient fetches selectable products from the upstream inventory API.
// The inventory service owns all product data; this client only reads it.
type CatalogClient struct {
	baseURL string
	client  *http.Client
}

// NewCatalogClient creates a catalog client for the given inventory API base
// URL, e.g. "http://localhost:9000".
func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CatalogClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// flexString accepts either a JSON string or number, since the inventory API
// is loose about identifier types.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// wireItem mirrors the inventory API's product shape. Prices show up under
// different keys depending on the endpoint version, and numeric fields may
// arrive as strings; everything is normalized in toCatalogItem.
type wireItem struct {
	ID           flexString      `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	TotalStock   decimal.Decimal `json:"totalStock"`
	Sold         decimal.Decimal `json:"sold"`
	Returned     decimal.Decimal `json:"returned"`
}

func (w *wireItem) toCatalogItem() entity.CatalogItem {
	price := w.Price
	if price.IsZero() {
		price = w.UnitPrice
	}
	if price.IsZero() {
		price = w.SellingPrice
	}
	return entity.CatalogItem{
		ID:          string(w.ID),
		Name:        w.Name,
		Description: w.Description,
		Price:       price,
		TotalStock:  w.TotalStock,
		Sold:        w.Sold,
		Returned:    w.Returned,
	}
}

// wireList accepts both response shapes the inventory API has used: a bare
// array and an object wrapping it under "products".
type wireList struct {
	Products []wireItem `json:"products"`
}

// FetchItems retrieves all catalog items from the inventory API. No stock
// filtering happens here; callers decide what is selectable.
func (c *CatalogClient) FetchItems(ctx context.Context) ([]entity.CatalogItem, error) {
	url := c.baseURL + "/api/products"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("upstream: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch products: %v", apperror.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: inventory API returned status %d", apperror.ErrUpstreamUnavailable, resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)

	var wrapped wireList
	var bare []wireItem

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode products: %v", apperror.ErrUpstreamUnavailable, err)
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil || wrapped.Products == nil {
		if err := json.Unmarshal(raw, &bare); err != nil {
			return nil, fmt.Errorf("%w: unexpected products payload: %v", apperror.ErrUpstreamUnavailable, err)
		}
		wrapped.Products = bare
	}

	items := make([]entity.CatalogItem, 0, len(wrapped.Products))
	for i := range wrapped.Products {
		items = append(items, wrapped.Products[i].toCatalogItem())
	}
	return items, nil
}

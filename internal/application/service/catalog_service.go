package service

import (
	"context"
	"strings"

	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	"github.com/sonitraders/invoicify-api/pkg/apperror"
)

// CatalogFetcher retrieves the item catalog from the inventory service.
type CatalogFetcher interface {
	FetchItems(ctx context.Context) ([]entity.CatalogItem, error)
}

// CatalogService exposes the remote item catalog to invoice drafting. Items
// are never stored locally; every call goes to the inventory service.
type CatalogService struct {
	fetcher CatalogFetcher
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(fetcher CatalogFetcher) *CatalogService {
	return &CatalogService{fetcher: fetcher}
}

// ListItems returns the selectable catalog for the line item picker: only
// items with remaining stock, optionally filtered by a search term matched
// against the display name.
func (s *CatalogService) ListItems(ctx context.Context, search string) ([]entity.CatalogItem, error) {
	items, err := s.fetcher.FetchItems(ctx)
	if err != nil {
		return nil, err
	}
	return filterItems(items, search, true), nil
}

// ListAll returns the catalog without the stock filter, for views that need
// sold-out items too.
func (s *CatalogService) ListAll(ctx context.Context, search string) ([]entity.CatalogItem, error) {
	items, err := s.fetcher.FetchItems(ctx)
	if err != nil {
		return nil, err
	}
	return filterItems(items, search, false), nil
}

func filterItems(items []entity.CatalogItem, search string, inStockOnly bool) []entity.CatalogItem {
	search = strings.ToLower(search)
	filtered := make([]entity.CatalogItem, 0, len(items))
	for _, item := range items {
		if inStockOnly && !item.InStock() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.DisplayName()), search) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// GetItem returns one catalog item by ID.
func (s *CatalogService) GetItem(ctx context.Context, id string) (*entity.CatalogItem, error) {
	items, err := s.fetcher.FetchItems(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Catalog item")
}

package entity

import "github.com/shopspring/decimal"

// CatalogItem is a priced product offered for invoice line items. It is owned
// by the upstream inventory API and is never persisted by this service.
type CatalogItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	TotalStock  decimal.Decimal `json:"total_stock"`
	Sold        decimal.Decimal `json:"sold"`
	Returned    decimal.Decimal `json:"returned"`
}

// DisplayName returns the text shown on an invoice row for this item.
func (c *CatalogItem) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Description
}

// Available returns the sellable quantity: totalStock - sold + returned.
func (c *CatalogItem) Available() decimal.Decimal {
	return c.TotalStock.Sub(c.Sold).Add(c.Returned)
}

// InStock reports whether the item should be offered for selection.
func (c *CatalogItem) InStock() bool {
	return c.Available().IsPositive()
}

package entity

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field names accepted by InvoiceDraft.UpdateLineItem.
const (
	LineItemFieldCatalog     = "catalog"
	LineItemFieldQuantity    = "quantity"
	LineItemFieldRate        = "rate"
	LineItemFieldDescription = "description"
)

// moneyPlaces is the internal precision of all currency amounts.
const moneyPlaces = 2

// DraftLineItem is one editable invoice row. Amount is always derived from
// quantity and rate; it is never set directly.
type DraftLineItem struct {
	CatalogID   string
	Description string
	Quantity    int
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// NewDraftLineItem returns an empty row with the minimum quantity of 1.
func NewDraftLineItem() DraftLineItem {
	return DraftLineItem{
		Quantity: 1,
		Rate:     decimal.Zero,
		Amount:   decimal.Zero,
	}
}

func (li *DraftLineItem) recompute() {
	qty := li.Quantity
	if qty < 1 {
		qty = 1
		li.Quantity = 1
	}
	li.Amount = li.Rate.Mul(decimal.NewFromInt(int64(qty))).Round(moneyPlaces)
}

// Filled reports whether the row carries enough content to count toward the
// invoice (the form keeps blank trailing rows around for data entry).
func (li *DraftLineItem) Filled() bool {
	return strings.TrimSpace(li.Description) != "" || li.CatalogID != ""
}

// InvoiceDraft is the in-progress invoice form state: an ordered list of line
// items plus the buyer fields captured alongside them. All mutation goes
// through its methods so the amount and minimum-row invariants hold at every
// step.
type InvoiceDraft struct {
	Items []DraftLineItem
}

// NewInvoiceDraft returns a draft with a single empty row; a draft never has
// fewer than one row.
func NewInvoiceDraft() *InvoiceDraft {
	return &InvoiceDraft{Items: []DraftLineItem{NewDraftLineItem()}}
}

// AddLineItem appends a new empty row.
func (d *InvoiceDraft) AddLineItem() {
	d.Items = append(d.Items, NewDraftLineItem())
}

// RemoveLineItem deletes the row at index. Removing the last remaining row is
// a no-op: the draft must never become empty. Out-of-range indexes are
// ignored.
func (d *InvoiceDraft) RemoveLineItem(index int) {
	if len(d.Items) <= 1 {
		return
	}
	if index < 0 || index >= len(d.Items) {
		return
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
}

// UpdateLineItem mutates one field of the row at index and recomputes its
// amount. Numeric text that fails to parse degrades to safe defaults (1 for
// quantity, 0 for rate) instead of erroring; this is form behavior, not an
// API boundary.
//
// For LineItemFieldCatalog the referenced catalog item must be passed in:
// description and rate are seeded from it while the existing quantity is
// kept (clamped to at least 1). For other fields item may be nil; when it is
// present it supplies the fallback rate for quantity edits on rows whose
// rate was never set.
func (d *InvoiceDraft) UpdateLineItem(index int, field, value string, item *CatalogItem) {
	if index < 0 || index >= len(d.Items) {
		return
	}
	li := &d.Items[index]

	switch field {
	case LineItemFieldCatalog:
		if item == nil {
			return
		}
		li.CatalogID = item.ID
		li.Description = item.DisplayName()
		li.Rate = item.Price.Round(moneyPlaces)
		li.recompute()

	case LineItemFieldQuantity:
		li.Quantity = ParseQuantity(value)
		if li.Rate.IsZero() && item != nil {
			li.Rate = item.Price.Round(moneyPlaces)
		}
		li.recompute()

	case LineItemFieldRate:
		li.Rate = ParseRate(value)
		li.recompute()

	default:
		// Free-text fields leave the amount untouched.
		li.Description = value
	}
}

// Totals is the fully derived aggregate block of an invoice. It carries no
// independent state and is recomputed from the current rows on demand.
type Totals struct {
	Subtotal            decimal.Decimal
	DiscountPercentage  decimal.Decimal
	DiscountAmount      decimal.Decimal
	AmountAfterDiscount decimal.Decimal
	TaxRate             decimal.Decimal
	TaxAmount           decimal.Decimal
	Total               decimal.Decimal
}

// ComputeTotals derives the invoice totals from the filled rows. Blank rows
// do not contribute to the subtotal. Negative discount or tax inputs are
// clamped to zero.
func (d *InvoiceDraft) ComputeTotals(discountPercentage, taxRate decimal.Decimal) Totals {
	if discountPercentage.IsNegative() {
		discountPercentage = decimal.Zero
	}
	if taxRate.IsNegative() {
		taxRate = decimal.Zero
	}

	subtotal := decimal.Zero
	for i := range d.Items {
		if d.Items[i].Filled() {
			subtotal = subtotal.Add(d.Items[i].Amount)
		}
	}

	hundred := decimal.NewFromInt(100)
	discountAmount := subtotal.Mul(discountPercentage).Div(hundred).Round(moneyPlaces)
	afterDiscount := subtotal.Sub(discountAmount)
	taxAmount := afterDiscount.Mul(taxRate).Div(hundred).Round(moneyPlaces)

	return Totals{
		Subtotal:            subtotal,
		DiscountPercentage:  discountPercentage,
		DiscountAmount:      discountAmount,
		AmountAfterDiscount: afterDiscount,
		TaxRate:             taxRate,
		TaxAmount:           taxAmount,
		Total:               afterDiscount.Add(taxAmount),
	}
}

// FilledItems returns the rows that count toward the invoice, in order.
func (d *InvoiceDraft) FilledItems() []DraftLineItem {
	var items []DraftLineItem
	for i := range d.Items {
		if d.Items[i].Filled() {
			items = append(items, d.Items[i])
		}
	}
	return items
}

// ParseQuantity parses a quantity field, clamping invalid or sub-1 input to
// the minimum of 1.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseRate parses a rate field, defaulting to 0 on invalid or negative
// input. The result carries 2 decimal places.
func ParseRate(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(moneyPlaces)
}

// ParsePercent parses a percentage field, defaulting to 0 on invalid or
// negative input.
func ParsePercent(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

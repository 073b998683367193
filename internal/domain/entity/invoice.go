package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses shown on the invoice list.
const (
	InvoiceStatusPending = "Pending"
	InvoiceStatusPaid    = "Paid"
	InvoiceStatusOverdue = "Overdue"
)

// Invoice is a generated invoice snapshot. Totals and line items are
// denormalized at generation time; later edits to the seller profile do not
// rewrite an existing invoice's record.
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber string    `gorm:"size:100;unique;not null" json:"invoice_number"`
	Date          time.Time `gorm:"type:date;not null" json:"date"`

	CustomerName    string `gorm:"size:255;not null" json:"customer_name"`
	CustomerAddress string `gorm:"type:text" json:"customer_address,omitempty"`
	CustomerPhone   string `gorm:"size:50" json:"customer_phone,omitempty"`
	CustomerEmail   string `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerGstin   string `gorm:"size:50" json:"customer_gstin,omitempty"`

	Subtotal           float64 `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	DiscountPercentage float64 `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`
	DiscountAmount     float64 `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	TaxRate            float64 `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	TaxAmount          float64 `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	Total              float64 `gorm:"type:decimal(15,2);default:0" json:"total"`

	Status    string         `gorm:"size:20;default:'Pending'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	LineItems []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"line_items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLineItem is one stored row of a generated invoice.
type InvoiceLineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Position  int       `gorm:"not null" json:"position"`

	CatalogID   string  `gorm:"size:100" json:"catalog_id,omitempty"`
	Description string  `gorm:"size:255;not null" json:"description"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Rate        float64 `gorm:"type:decimal(15,2);not null" json:"rate"`
	Amount      float64 `gorm:"type:decimal(15,2);not null" json:"amount"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new line item
func (li *InvoiceLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLineItem model
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

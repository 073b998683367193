package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SellerProfile is the single shop profile printed on every invoice: display
// fields, payment configuration and the default tax/discount percentages
// seeded into new drafts. Exactly one row exists.
type SellerProfile struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	ShopName string `gorm:"size:255;not null" json:"shop_name"`
	Address  string `gorm:"type:text" json:"address,omitempty"`
	City     string `gorm:"size:100" json:"city,omitempty"`
	State    string `gorm:"size:100" json:"state,omitempty"`
	District string `gorm:"size:100" json:"district,omitempty"`
	Phone    string `gorm:"size:50" json:"phone,omitempty"`
	Gstin    string `gorm:"size:50" json:"gstin,omitempty"`

	// Payment configuration. PaymentQrCode holds a stored QR image (data URI
	// or URL) that takes priority over dynamically generated codes.
	UpiVpa        string `gorm:"size:255" json:"upi_vpa,omitempty"`
	PaymentQrCode string `gorm:"type:text" json:"payment_qr_code,omitempty"`

	BankName          string `gorm:"size:255" json:"bank_name,omitempty"`
	BankAccountHolder string `gorm:"size:255" json:"bank_account_holder,omitempty"`
	BankAccountNumber string `gorm:"size:50" json:"bank_account_number,omitempty"`
	BankIfsc          string `gorm:"size:20" json:"bank_ifsc,omitempty"`
	BankBranch        string `gorm:"size:255" json:"bank_branch,omitempty"`

	TaxPercentage      float64 `gorm:"type:decimal(5,2);default:0" json:"tax_percentage"`
	DiscountPercentage float64 `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the profile
func (p *SellerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SellerProfile model
func (SellerProfile) TableName() string {
	return "seller_profiles"
}

// HasBankDetails reports whether any bank field is set.
func (p *SellerProfile) HasBankDetails() bool {
	return p.BankName != "" || p.BankAccountHolder != "" || p.BankAccountNumber != "" ||
		p.BankIfsc != "" || p.BankBranch != ""
}

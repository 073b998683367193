package entity

// ArtifactSource records how an invoice's payment artifact was obtained.
type ArtifactSource string

const (
	// ArtifactSourceStored means the profile's stored QR image was reused.
	ArtifactSourceStored ArtifactSource = "stored"
	// ArtifactSourceGenerated means a UPI link was built and encoded.
	ArtifactSourceGenerated ArtifactSource = "generated"
	// ArtifactSourceDemo means the placeholder demo link was encoded because
	// no VPA and no stored QR are configured.
	ArtifactSourceDemo ArtifactSource = "demo"
	// ArtifactSourceNone means encoding failed; the document renders without
	// a payment QR box.
	ArtifactSourceNone ArtifactSource = "none"
)

// PaymentArtifact is the scannable payment image attached to one rendered
// invoice. It is built fresh for every generate/view/print action and never
// persisted.
type PaymentArtifact struct {
	// QRImage is a data URI (generated/demo) or the stored image reference.
	// Empty when Source is ArtifactSourceNone.
	QRImage string         `json:"qr_image,omitempty"`
	Link    string         `json:"link,omitempty"`
	Source  ArtifactSource `json:"source"`
}

// DocumentSeller is the Bill From block of a rendered invoice.
type DocumentSeller struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	District string `json:"district,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Gstin    string `json:"gstin,omitempty"`
	UpiVpa   string `json:"upi_vpa,omitempty"`
}

// DocumentBuyer is the Bill To block of a rendered invoice.
type DocumentBuyer struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Gstin   string `json:"gstin,omitempty"`
}

// DocumentItem is one printed invoice row.
type DocumentItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// DocumentPayment is the payment block: bank fields plus the QR artifact.
type DocumentPayment struct {
	BankName          string `json:"bank_name,omitempty"`
	BankAccountHolder string `json:"bank_account_holder,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	BankIfsc          string `json:"bank_ifsc,omitempty"`
	BankBranch        string `json:"bank_branch,omitempty"`
	QRImage           string `json:"qr_image,omitempty"`
	UpiVpa            string `json:"upi_vpa,omitempty"`
}

// HasBank reports whether any bank field is present.
func (p *DocumentPayment) HasBank() bool {
	return p.BankName != "" || p.BankAccountHolder != "" || p.BankAccountNumber != "" ||
		p.BankIfsc != "" || p.BankBranch != ""
}

// HasContent reports whether the payment block should render at all.
func (p *DocumentPayment) HasContent() bool {
	return p.HasBank() || p.QRImage != ""
}

// InvoiceDocument is the finalized, immutable model handed to a renderer.
// It is NOT a database entity: it is composed from the invoice snapshot,
// the seller profile and the payment artifact at render time.
type InvoiceDocument struct {
	InvoiceNumber string          `json:"invoice_number"`
	Date          string          `json:"date"`
	Seller        DocumentSeller  `json:"seller"`
	Buyer         DocumentBuyer   `json:"buyer"`
	Items         []DocumentItem  `json:"items"`
	Payment       DocumentPayment `json:"payment"`

	Subtotal           float64 `json:"subtotal"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountAmount     float64 `json:"discount_amount"`
	TaxRate            float64 `json:"tax_rate"`
	TaxAmount          float64 `json:"tax_amount"`
	Total              float64 `json:"total"`
}

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonitraders/invoicify-api/internal/domain/entity"
)

func sampleDocument() *entity.InvoiceDocument {
	return &entity.InvoiceDocument{
		InvoiceNumber: "INV-000042",
		Date:          "31/08/2026",
		Seller: entity.DocumentSeller{
			ShopName: "Soni Traders",
			Address:  "14 Market Road",
			City:     "Pune",
			State:    "Maharashtra",
			Phone:    "9876543210",
			Gstin:    "27AAAPL1234C1ZV",
			UpiVpa:   "sonitraders@upi",
		},
		Buyer: entity.DocumentBuyer{
			Name:  "Acme Traders",
			Phone: "9123456780",
			Email: "accounts@acme.example",
		},
		Items: []entity.DocumentItem{
			{Description: "Copper Wire 2mm", Quantity: 2, Rate: 100, Amount: 200},
			{Description: "Junction Box", Quantity: 3, Rate: 50, Amount: 150},
		},
		Payment: entity.DocumentPayment{
			BankName:          "State Bank",
			BankAccountHolder: "Soni Traders",
			BankAccountNumber: "00112233445",
			BankIfsc:          "SBIN0001234",
			QRImage:           "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg==",
			UpiVpa:            "sonitraders@upi",
		},
		Subtotal:           350,
		DiscountPercentage: 10,
		DiscountAmount:     35,
		TaxRate:            5,
		TaxAmount:          15.75,
		Total:              330.75,
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{350, "₹350"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{215600, "₹2,15,600"},
		{1234567, "₹12,34,567"},
		{330.75, "₹331"},
		{-35, "-₹35"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(tt.in), "FormatINR(%v)", tt.in)
	}
}

func TestFormatINRPlain(t *testing.T) {
	assert.Equal(t, "Rs 2,15,600", FormatINRPlain(215600))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "10", FormatPercent(10))
	assert.Equal(t, "2.5", FormatPercent(2.5))
	assert.Equal(t, "0", FormatPercent(0))
}

func TestForFormat(t *testing.T) {
	r, err := ForFormat("")
	require.NoError(t, err)
	assert.IsType(t, &HTMLRenderer{}, r)

	r, err = ForFormat(FormatPDF)
	require.NoError(t, err)
	assert.IsType(t, &PDFRenderer{}, r)

	_, err = ForFormat("docx")
	assert.Error(t, err)
}

func TestHTMLRendererFullDocument(t *testing.T) {
	out, err := NewHTMLRenderer().Render(sampleDocument())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "TAX INVOICE")
	assert.Contains(t, html, "#INV-000042")
	assert.Contains(t, html, "Date: 31/08/2026")
	assert.Contains(t, html, "Acme Traders")
	assert.Contains(t, html, "9123456780 | accounts@acme.example")
	assert.Contains(t, html, "Copper Wire 2mm")
	assert.Contains(t, html, "Discount (10%)")
	assert.Contains(t, html, "-₹35")
	assert.Contains(t, html, "Tax (5%)")
	assert.Contains(t, html, "₹331")
	assert.Contains(t, html, `src="data:image/png;base64,`)
	assert.Contains(t, html, "Scan to pay")
	assert.Contains(t, html, "Bank Details")
	assert.Contains(t, html, "Thank you for your business!")

	// Summary rows in reading order.
	sub := strings.Index(html, "Subtotal")
	disc := strings.Index(html, "Discount (10%)")
	tax := strings.Index(html, "Tax (5%)")
	total := strings.Index(html, `<div class="totals-row grand">`)
	require.True(t, sub >= 0 && disc >= 0 && tax >= 0 && total >= 0)
	assert.Less(t, sub, disc)
	assert.Less(t, disc, tax)
	assert.Less(t, tax, total)
}

func TestHTMLRendererOmitsZeroAdjustments(t *testing.T) {
	doc := sampleDocument()
	doc.DiscountPercentage = 0
	doc.DiscountAmount = 0
	doc.TaxRate = 0
	doc.TaxAmount = 0
	doc.Total = doc.Subtotal

	out, err := NewHTMLRenderer().Render(doc)
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "Discount")
	assert.NotContains(t, html, "Tax (")
	assert.Contains(t, html, "Subtotal")
	assert.Contains(t, html, "Total")
}

func TestHTMLRendererWithoutPaymentBlock(t *testing.T) {
	doc := sampleDocument()
	doc.Payment = entity.DocumentPayment{}

	out, err := NewHTMLRenderer().Render(doc)
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "Bank Details")
	assert.NotContains(t, html, "Scan to pay")
	assert.Contains(t, html, "Thank you for your business!")
}

func TestHTMLRendererQROnlyPayment(t *testing.T) {
	doc := sampleDocument()
	doc.Payment.BankName = ""
	doc.Payment.BankAccountHolder = ""
	doc.Payment.BankAccountNumber = ""
	doc.Payment.BankIfsc = ""
	doc.Payment.BankBranch = ""

	out, err := NewHTMLRenderer().Render(doc)
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "Bank Details")
	assert.Contains(t, html, "Scan to pay")
}

func TestHTMLRendererEscapesUserInput(t *testing.T) {
	doc := sampleDocument()
	doc.Buyer.Name = `<script>alert("x")</script>`

	out, err := NewHTMLRenderer().Render(doc)
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestHTMLRendererNoItems(t *testing.T) {
	doc := sampleDocument()
	doc.Items = nil

	out, err := NewHTMLRenderer().Render(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No items")
}

func TestPDFRendererProducesPDF(t *testing.T) {
	out, err := NewPDFRenderer().Render(sampleDocument())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"), "output should start with the PDF magic")
}

func TestPDFRendererWithoutQR(t *testing.T) {
	doc := sampleDocument()
	doc.Payment.QRImage = ""

	out, err := NewPDFRenderer().Render(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestDecodePNGDataURI(t *testing.T) {
	img, ok := decodePNGDataURI(sampleDocument().Payment.QRImage)
	require.True(t, ok)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img[:4])

	_, ok = decodePNGDataURI("https://files.example/qr.png")
	assert.False(t, ok)

	_, ok = decodePNGDataURI("data:image/png;base64,!!!")
	assert.False(t, ok)
}

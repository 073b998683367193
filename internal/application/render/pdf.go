package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/sonitraders/invoicify-api/internal/domain/entity"
)

// PDFRenderer produces an A4 invoice PDF. Currency values use the "Rs "
// prefix because the built-in PDF fonts have no rupee glyph.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) FileExt() string     { return "pdf" }

const (
	pdfMargin   = 15.0
	pdfQRSizeMM = 35.0
)

// accent is the header color shared with the HTML template (#667eea).
var pdfAccent = [3]int{102, 126, 234}

func (r *PDFRenderer) Render(doc *entity.InvoiceDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	// Title block.
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(pdfAccent[0], pdfAccent[1], pdfAccent[2])
	pdf.CellFormat(contentW, 9, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(contentW, 6, "#"+doc.InvoiceNumber, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(contentW, 5, "Date: "+doc.Date, "", 1, "C", false, 0, "")
	pdf.SetDrawColor(pdfAccent[0], pdfAccent[1], pdfAccent[2])
	pdf.SetLineWidth(0.6)
	y := pdf.GetY() + 2
	pdf.Line(pdfMargin, y, pageW-pdfMargin, y)
	pdf.SetY(y + 5)

	// Bill From / Bill To side by side.
	colW := contentW / 2
	topY := pdf.GetY()
	leftBottom := r.writeParty(pdf, pdfMargin, topY, colW-4, "Bill From", sellerLines(doc))
	rightBottom := r.writeParty(pdf, pdfMargin+colW+4, topY, colW-4, "Bill To", buyerLines(doc))
	if rightBottom > leftBottom {
		leftBottom = rightBottom
	}
	pdf.SetY(leftBottom + 6)

	r.writeItemsTable(pdf, contentW, doc.Items)
	r.writeTotals(pdf, pageW, doc)
	r.writePayment(pdf, pageW, contentW, doc)

	// Footer.
	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(136, 136, 136)
	pdf.CellFormat(contentW, 5, "Thank you for your business!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sellerLines(doc *entity.InvoiceDocument) []string {
	name := doc.Seller.ShopName
	if name == "" {
		name = "Soni Traders"
	}
	lines := []string{name}
	if doc.Seller.Address != "" {
		lines = append(lines, doc.Seller.Address)
	}
	var region []string
	for _, part := range []string{doc.Seller.City, doc.Seller.State, doc.Seller.District} {
		if part != "" {
			region = append(region, part)
		}
	}
	if len(region) > 0 {
		lines = append(lines, strings.Join(region, ", "))
	}
	if doc.Seller.Phone != "" {
		lines = append(lines, "Ph: "+doc.Seller.Phone)
	}
	if doc.Seller.Gstin != "" {
		lines = append(lines, "GSTIN: "+doc.Seller.Gstin)
	}
	return lines
}

func buyerLines(doc *entity.InvoiceDocument) []string {
	name := doc.Buyer.Name
	if name == "" {
		name = "-"
	}
	lines := []string{name}
	if doc.Buyer.Address != "" {
		lines = append(lines, doc.Buyer.Address)
	}
	var contact []string
	for _, part := range []string{doc.Buyer.Phone, doc.Buyer.Email} {
		if part != "" {
			contact = append(contact, part)
		}
	}
	if len(contact) > 0 {
		lines = append(lines, strings.Join(contact, " | "))
	}
	if doc.Buyer.Gstin != "" {
		lines = append(lines, "GSTIN: "+doc.Buyer.Gstin)
	}
	return lines
}

// writeParty renders one Bill From/To block at (x, y) and returns the bottom
// Y coordinate it reached.
func (r *PDFRenderer) writeParty(pdf *gofpdf.Fpdf, x, y, w float64, heading string, lines []string) float64 {
	pdf.SetXY(x, y)
	pdf.SetFont("Arial", "B", 8)
	pdf.SetTextColor(pdfAccent[0], pdfAccent[1], pdfAccent[2])
	pdf.CellFormat(w, 5, strings.ToUpper(heading), "", 2, "L", false, 0, "")

	pdf.SetTextColor(51, 51, 51)
	for i, line := range lines {
		if i == 0 {
			pdf.SetFont("Arial", "B", 11)
		} else {
			pdf.SetFont("Arial", "", 9)
			pdf.SetTextColor(85, 85, 85)
		}
		pdf.SetX(x)
		pdf.MultiCell(w, 5, line, "", "L", false)
	}
	return pdf.GetY()
}

func (r *PDFRenderer) writeItemsTable(pdf *gofpdf.Fpdf, contentW float64, items []entity.DocumentItem) {
	numW := contentW * 0.07
	nameW := contentW * 0.45
	qtyW := contentW * 0.12
	rateW := contentW * 0.18
	amtW := contentW - numW - nameW - qtyW - rateW

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(pdfAccent[0], pdfAccent[1], pdfAccent[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(numW, 8, "#", "", 0, "L", true, 0, "")
	pdf.CellFormat(nameW, 8, "NAME", "", 0, "L", true, 0, "")
	pdf.CellFormat(qtyW, 8, "QTY", "", 0, "R", true, 0, "")
	pdf.CellFormat(rateW, 8, "RATE", "", 0, "R", true, 0, "")
	pdf.CellFormat(amtW, 8, "AMOUNT", "", 1, "R", true, 0, "")

	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Arial", "", 9)
	pdf.SetDrawColor(238, 238, 238)
	pdf.SetLineWidth(0.2)

	if len(items) == 0 {
		pdf.CellFormat(contentW, 10, "No items", "B", 1, "C", false, 0, "")
		pdf.Ln(4)
		return
	}
	for i, item := range items {
		desc := item.Description
		if desc == "" {
			desc = "-"
		}
		pdf.CellFormat(numW, 7, strconv.Itoa(i+1), "B", 0, "L", false, 0, "")
		pdf.CellFormat(nameW, 7, desc, "B", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, 7, strconv.Itoa(item.Quantity), "B", 0, "R", false, 0, "")
		pdf.CellFormat(rateW, 7, FormatINRPlain(item.Rate), "B", 0, "R", false, 0, "")
		pdf.CellFormat(amtW, 7, FormatINRPlain(item.Amount), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) writeTotals(pdf *gofpdf.Fpdf, pageW float64, doc *entity.InvoiceDocument) {
	boxW := 80.0
	labelW := boxW * 0.55
	valueW := boxW - labelW
	x := pageW - pdfMargin - boxW

	row := func(label, value string, grand bool) {
		pdf.SetX(x)
		if grand {
			pdf.SetFont("Arial", "B", 11)
			pdf.SetFillColor(pdfAccent[0], pdfAccent[1], pdfAccent[2])
			pdf.SetTextColor(255, 255, 255)
		} else {
			pdf.SetFont("Arial", "", 9)
			pdf.SetFillColor(250, 250, 250)
			pdf.SetTextColor(51, 51, 51)
		}
		pdf.CellFormat(labelW, 8, label, "", 0, "L", true, 0, "")
		pdf.CellFormat(valueW, 8, value, "", 1, "R", true, 0, "")
	}

	row("Subtotal", FormatINRPlain(doc.Subtotal), false)
	if doc.DiscountPercentage > 0 {
		row(fmt.Sprintf("Discount (%s%%)", FormatPercent(doc.DiscountPercentage)), "-"+FormatINRPlain(doc.DiscountAmount), false)
	}
	if doc.TaxRate > 0 {
		row(fmt.Sprintf("Tax (%s%%)", FormatPercent(doc.TaxRate)), FormatINRPlain(doc.TaxAmount), false)
	}
	row("Total", FormatINRPlain(doc.Total), true)
}

func (r *PDFRenderer) writePayment(pdf *gofpdf.Fpdf, pageW, contentW float64, doc *entity.InvoiceDocument) {
	if !doc.Payment.HasContent() {
		return
	}
	pdf.Ln(8)
	topY := pdf.GetY()

	if doc.Payment.HasBank() {
		lines := [][2]string{
			{"Account Holder", doc.Payment.BankAccountHolder},
			{"Bank", doc.Payment.BankName},
			{"Branch", doc.Payment.BankBranch},
			{"Account No", doc.Payment.BankAccountNumber},
			{"IFSC", doc.Payment.BankIfsc},
		}
		pdf.SetFont("Arial", "B", 8)
		pdf.SetTextColor(pdfAccent[0], pdfAccent[1], pdfAccent[2])
		pdf.CellFormat(contentW*0.5, 5, "BANK DETAILS", "", 2, "L", false, 0, "")
		pdf.SetTextColor(85, 85, 85)
		for _, line := range lines {
			if line[1] == "" {
				continue
			}
			pdf.SetFont("Arial", "B", 9)
			pdf.CellFormat(32, 5, line[0]+":", "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(contentW*0.5-32, 5, line[1], "", 1, "L", false, 0, "")
		}
	}

	if img, ok := decodePNGDataURI(doc.Payment.QRImage); ok {
		x := pageW - pdfMargin - pdfQRSizeMM
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("payment-qr", opts, bytes.NewReader(img))
		pdf.ImageOptions("payment-qr", x, topY, pdfQRSizeMM, pdfQRSizeMM, false, opts, 0, "")
		pdf.SetXY(x, topY+pdfQRSizeMM+1)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(pdfQRSizeMM, 4, "Scan to pay", "", 2, "C", false, 0, "")
		if doc.Payment.UpiVpa != "" {
			pdf.SetFont("Arial", "", 7)
			pdf.SetTextColor(136, 136, 136)
			pdf.SetX(x)
			pdf.CellFormat(pdfQRSizeMM, 4, doc.Payment.UpiVpa, "", 1, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(51, 51, 51)
}

const pngDataURIPrefix = "data:image/png;base64,"

// decodePNGDataURI decodes the QR data URI. Stored artifacts that are plain
// URLs cannot be embedded here and are skipped; the HTML renderer still
// shows them.
func decodePNGDataURI(uri string) ([]byte, bool) {
	if !strings.HasPrefix(uri, pngDataURIPrefix) {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(uri[len(pngDataURIPrefix):])
	if err != nil {
		return nil, false
	}
	return raw, true
}

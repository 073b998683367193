package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/sonitraders/invoicify-api/internal/domain/entity"
)

// HTMLRenderer produces a self-contained printable HTML page for an invoice.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tpl: invoiceTpl}
}

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (r *HTMLRenderer) FileExt() string     { return "html" }

func (r *HTMLRenderer) Render(doc *entity.InvoiceDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, htmlDoc{doc}); err != nil {
		return nil, fmt.Errorf("failed to render invoice html: %w", err)
	}
	return buf.Bytes(), nil
}

// htmlDoc wraps the document with the view helpers the template needs.
type htmlDoc struct {
	*entity.InvoiceDocument
}

// QRSrc marks the QR data URI as a safe image source. The URI is produced by
// our own encoder or read from the stored profile, never from request input.
func (d htmlDoc) QRSrc() template.URL {
	return template.URL(d.Payment.QRImage)
}

// SellerAddressLines groups the seller address the way the printed header
// shows it: street on one line, city/state/district joined on the next.
func (d htmlDoc) SellerAddressLines() []string {
	var lines []string
	if d.Seller.Address != "" {
		lines = append(lines, d.Seller.Address)
	}
	var region []string
	for _, part := range []string{d.Seller.City, d.Seller.State, d.Seller.District} {
		if part != "" {
			region = append(region, part)
		}
	}
	if len(region) > 0 {
		lines = append(lines, strings.Join(region, ", "))
	}
	return lines
}

// BuyerContactLine joins phone and email with a separator, skipping blanks.
func (d htmlDoc) BuyerContactLine() string {
	var parts []string
	for _, part := range []string{d.Buyer.Phone, d.Buyer.Email} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " | ")
}

var invoiceTpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"inr": FormatINR,
	"pct": FormatPercent,
	"inc": func(i int) int { return i + 1 },
}).Parse(invoiceTplText))

const invoiceTplText = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Invoice {{.InvoiceNumber}}</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; font-size: 14px; color: #333; line-height: 1.5; padding: 24px; max-width: 800px; margin: 0 auto; }
    .invoice-title { text-align: center; margin-bottom: 24px; padding-bottom: 16px; border-bottom: 2px solid #667eea; }
    .invoice-title h1 { font-size: 22px; color: #667eea; margin-bottom: 4px; }
    .invoice-title .inv-num { font-size: 16px; font-weight: 700; color: #333; }
    .invoice-title .date { font-size: 13px; color: #666; }
    .bill-section { margin-bottom: 24px; padding: 16px; border: 1px solid #eee; border-radius: 8px; background: #fafafa; }
    .bill-section h3 { font-size: 12px; color: #667eea; text-transform: uppercase; letter-spacing: 0.5px; margin-bottom: 8px; }
    .bill-section .name { font-weight: 600; font-size: 15px; margin-bottom: 4px; }
    .bill-section .details { font-size: 13px; color: #555; line-height: 1.6; }
    .bill-rows { display: flex; gap: 24px; flex-wrap: wrap; }
    .bill-from { flex: 1; min-width: 280px; }
    .bill-to { flex: 1; min-width: 280px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
    th { background: #667eea; color: white; padding: 10px 12px; text-align: left; font-weight: 600; font-size: 12px; text-transform: uppercase; }
    td { padding: 8px 12px; border-bottom: 1px solid #eee; }
    th:last-child, td:last-child { text-align: right; }
    th:nth-child(3), th:nth-child(4) { text-align: right; }
    td:nth-child(3), td:nth-child(4) { text-align: right; }
    .totals { margin-left: auto; width: 280px; border: 1px solid #eee; border-radius: 8px; overflow: hidden; }
    .totals-row { display: flex; justify-content: space-between; padding: 8px 16px; background: #fafafa; }
    .totals-row.grand { background: #667eea; color: white; font-size: 16px; font-weight: 700; padding: 12px 16px; }
    .payment-section { margin-top: 24px; }
    .payment-row { display: flex; gap: 24px; flex-wrap: wrap; align-items: flex-start; justify-content: space-between; }
    .bank-details { flex: 1; min-width: 200px; padding: 12px 16px; border: 1px solid #eee; border-radius: 8px; background: #fafafa; }
    .payment-heading { font-size: 12px; color: #667eea; text-transform: uppercase; letter-spacing: 0.5px; margin-bottom: 8px; }
    .bank-line { font-size: 13px; color: #555; line-height: 1.6; }
    .qr-box { text-align: center; padding: 12px; border: 1px solid #eee; border-radius: 8px; background: #fafafa; }
    .qr-label { font-size: 12px; color: #666; margin-top: 6px; }
    .qr-vpa { font-size: 11px; color: #888; margin-top: 2px; }
    .footer { margin-top: 40px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #888; text-align: center; }
  </style>
</head>
<body>
  <div class="invoice-title">
    <h1>TAX INVOICE</h1>
    <div class="inv-num">#{{.InvoiceNumber}}</div>
    <div class="date">Date: {{.Date}}</div>
  </div>

  <div class="bill-rows">
    <div class="bill-section bill-from">
      <h3>Bill From</h3>
      <div class="name">{{if .Seller.ShopName}}{{.Seller.ShopName}}{{else}}Soni Traders{{end}}</div>
      {{range .SellerAddressLines}}<div class="details">{{.}}</div>
      {{end}}{{with .Seller.Phone}}<div class="details">Ph: {{.}}</div>
      {{end}}{{with .Seller.Gstin}}<div class="details">GSTIN: {{.}}</div>
      {{end}}
    </div>
    <div class="bill-section bill-to">
      <h3>Bill To</h3>
      <div class="name">{{if .Buyer.Name}}{{.Buyer.Name}}{{else}}-{{end}}</div>
      {{with .Buyer.Address}}<div class="details">{{.}}</div>
      {{end}}{{with .BuyerContactLine}}<div class="details">{{.}}</div>
      {{end}}{{with .Buyer.Gstin}}<div class="details">GSTIN: {{.}}</div>
      {{end}}
    </div>
  </div>

  <table>
    <thead>
      <tr>
        <th>#</th>
        <th>Name</th>
        <th>Qty</th>
        <th>Rate</th>
        <th>Amount</th>
      </tr>
    </thead>
    <tbody>
      {{if .Items}}{{range $i, $item := .Items}}<tr>
        <td>{{inc $i}}</td>
        <td>{{if $item.Description}}{{$item.Description}}{{else}}-{{end}}</td>
        <td>{{$item.Quantity}}</td>
        <td>{{inr $item.Rate}}</td>
        <td>{{inr $item.Amount}}</td>
      </tr>
      {{end}}{{else}}<tr><td colspan="5" style="padding: 20px; text-align: center;">No items</td></tr>{{end}}
    </tbody>
  </table>

  <div class="totals">
    <div class="totals-row">
      <span>Subtotal</span>
      <span>{{inr .Subtotal}}</span>
    </div>
    {{if gt .DiscountPercentage 0.0}}<div class="totals-row">
      <span>Discount ({{pct .DiscountPercentage}}%)</span>
      <span>-{{inr .DiscountAmount}}</span>
    </div>
    {{end}}{{if gt .TaxRate 0.0}}<div class="totals-row">
      <span>Tax ({{pct .TaxRate}}%)</span>
      <span>{{inr .TaxAmount}}</span>
    </div>
    {{end}}<div class="totals-row grand">
      <span>Total</span>
      <span>{{inr .Total}}</span>
    </div>
  </div>

  <div class="payment-section">
    {{if .Payment.HasContent}}<div class="payment-row">
      {{if .Payment.HasBank}}<div class="bank-details">
        <h4 class="payment-heading">Bank Details</h4>
        {{with .Payment.BankAccountHolder}}<div class="bank-line"><strong>Account Holder:</strong> {{.}}</div>
        {{end}}{{with .Payment.BankName}}<div class="bank-line"><strong>Bank:</strong> {{.}}</div>
        {{end}}{{with .Payment.BankBranch}}<div class="bank-line"><strong>Branch:</strong> {{.}}</div>
        {{end}}{{with .Payment.BankAccountNumber}}<div class="bank-line"><strong>Account No:</strong> {{.}}</div>
        {{end}}{{with .Payment.BankIfsc}}<div class="bank-line"><strong>IFSC:</strong> {{.}}</div>
        {{end}}
      </div>
      {{end}}{{if .Payment.QRImage}}<div class="qr-box">
        <img src="{{.QRSrc}}" alt="Pay via QR" width="140" height="140" />
        <div class="qr-label">Scan to pay</div>
        {{with .Payment.UpiVpa}}<div class="qr-vpa">{{.}}</div>
        {{end}}
      </div>
      {{end}}
    </div>
    {{end}}
  </div>

  <div class="footer">
    Thank you for your business!
  </div>
</body>
</html>
`

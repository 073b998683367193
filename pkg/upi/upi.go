package upi

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyCode is carried on every generated payment link.
const CurrencyCode = "INR"

// Scheme is the deep-link scheme recognised by UPI payment apps.
const Scheme = "upi://pay"

// BuildPaymentURL constructs a UPI deep link for the given payee.
//
// It returns "" when vpa is blank, signalling that no dynamic link can be
// built and the caller must fall back to a static or demo artifact. The
// payee name, amount and note parameters are omitted when absent; the payee
// address and currency are always present. Parameter order is fixed
// (pa, pn, am, cu, tn) so generated links are stable.
//
// No VPA syntax validation happens here: a malformed address is the payment
// app's problem, not the link builder's.
func BuildPaymentURL(vpa, payeeName string, amount decimal.Decimal, note string) string {
	vpa = strings.TrimSpace(vpa)
	if vpa == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(Scheme)
	b.WriteString("?pa=")
	b.WriteString(url.QueryEscape(vpa))
	if payeeName != "" {
		b.WriteString("&pn=")
		b.WriteString(url.QueryEscape(payeeName))
	}
	if amount.IsPositive() {
		b.WriteString("&am=")
		b.WriteString(amount.StringFixed(2))
	}
	b.WriteString("&cu=")
	b.WriteString(CurrencyCode)
	if note != "" {
		b.WriteString("&tn=")
		b.WriteString(url.QueryEscape(note))
	}
	return b.String()
}

package upi

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildPaymentURL(t *testing.T) {
	tests := []struct {
		name      string
		vpa       string
		payeeName string
		amount    decimal.Decimal
		note      string
		want      string
	}{
		{
			name:   "blank vpa returns empty",
			vpa:    "",
			amount: decimal.NewFromInt(100),
			note:   "note",
			want:   "",
		},
		{
			name:   "whitespace vpa returns empty",
			vpa:    "   ",
			amount: decimal.NewFromInt(100),
			want:   "",
		},
		{
			name:   "minimal link omits pn am tn",
			vpa:    "shop@bank",
			amount: decimal.Zero,
			want:   "upi://pay?pa=shop%40bank&cu=INR",
		},
		{
			name:      "full link keeps fixed parameter order",
			vpa:       "shop@bank",
			payeeName: "Soni Traders",
			amount:    decimal.NewFromFloat(330.75),
			note:      "Invoice INV-000001",
			want:      "upi://pay?pa=shop%40bank&pn=Soni+Traders&am=330.75&cu=INR&tn=Invoice+INV-000001",
		},
		{
			name:   "amount formatted to two decimals",
			vpa:    "shop@bank",
			amount: decimal.NewFromInt(150),
			want:   "upi://pay?pa=shop%40bank&am=150.00&cu=INR",
		},
		{
			name:   "negative amount omitted",
			vpa:    "shop@bank",
			amount: decimal.NewFromInt(-5),
			want:   "upi://pay?pa=shop%40bank&cu=INR",
		},
		{
			name:   "vpa is trimmed before encoding",
			vpa:    " shop@bank ",
			amount: decimal.Zero,
			want:   "upi://pay?pa=shop%40bank&cu=INR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPaymentURL(tt.vpa, tt.payeeName, tt.amount, tt.note)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPaymentURLEncodesValues(t *testing.T) {
	got := BuildPaymentURL("shop@bank", "A & B", decimal.Zero, "50% advance")
	assert.Contains(t, got, "pn=A+%26+B")
	assert.Contains(t, got, "tn=50%25+advance")
	assert.True(t, strings.HasPrefix(got, Scheme+"?pa="))
}

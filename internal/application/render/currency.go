package render

import (
	"math"
	"strconv"
	"strings"
)

// DisplayFractionDigits is the fraction precision used for currency values on
// rendered documents. Internal math stays at 2 decimal places; the printed
// document rounds to whole rupees, matching the dashboard's display
// convention.
const DisplayFractionDigits = 0

// currencySymbol is the rupee sign used on HTML documents. The PDF renderer
// uses the ASCII prefix below because the core PDF fonts have no rupee glyph.
const (
	currencySymbol      = "₹"
	currencyASCIIPrefix = "Rs "
)

// FormatINR formats a currency value with the rupee symbol and en-IN digit
// grouping (last three digits, then groups of two): 215600 -> "₹2,15,600".
func FormatINR(v float64) string {
	return formatCurrency(v, currencySymbol)
}

// FormatINRPlain is FormatINR with an ASCII "Rs " prefix for surfaces that
// cannot render the rupee sign.
func FormatINRPlain(v float64) string {
	return formatCurrency(v, currencyASCIIPrefix)
}

func formatCurrency(v float64, symbol string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', DisplayFractionDigits, 64)
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	out := symbol + groupIndian(intPart) + frac
	if neg {
		return "-" + out
	}
	return out
}

// groupIndian inserts en-IN thousand separators: the last three digits form
// one group, every preceding pair forms another (1234567 -> 12,34,567).
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}

// FormatPercent renders a percentage without trailing zeros: 10 -> "10",
// 2.5 -> "2.5".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package util

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1000)
	million  = decimal.NewFromInt(1000000)
)

// FormatEuro renders a monetary amount in the compact display tiers used by
// the running-total widget: millions as "M€", thousands as "k€", anything
// below as plain euros.
func FormatEuro(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(million):
		return amount.Div(million).StringFixed(2) + " M€"
	case amount.GreaterThanOrEqual(thousand):
		return amount.Div(thousand).StringFixed(1) + " k€"
	default:
		return amount.StringFixed(0) + " €"
	}
}

// FormatEuroFull renders a monetary amount with thousands separators in the
// source data's locale convention: "1.234.567,89 €".
func FormatEuroFull(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	negative := false
	if len(s) > 0 && s[0] == '-' {
		negative = true
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var grouped []byte
	for i, digit := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, digit)
	}

	out := fmt.Sprintf("%s,%s €", grouped, decPart)
	if negative {
		out = "-" + out
	}
	return out
}

// FormatCount renders an integer count compactly for dashboard cells.
func FormatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

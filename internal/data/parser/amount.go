package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseEuroAmount converts a locale-formatted amount such as "123.456,78"
// (period as thousands separator, comma as decimal separator) into a decimal
// value. Empty input yields zero. Unparseable or negative input is an error
// and the owning event must be dropped.
func ParseEuroAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	clean := strings.ReplaceAll(raw, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount %q: %w", raw, err)
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative amount %q", raw)
	}
	return amount, nil
}

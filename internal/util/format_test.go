package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatEuro(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "plain_euros", amount: 999, want: "999 €"},
		{name: "thousands", amount: 45500, want: "45.5 k€"},
		{name: "exactly_one_thousand", amount: 1000, want: "1.0 k€"},
		{name: "millions", amount: 2500000, want: "2.50 M€"},
		{name: "exactly_one_million", amount: 1000000, want: "1.00 M€"},
		{name: "zero", amount: 0, want: "0 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEuro(decimal.NewFromInt(tt.amount)))
		})
	}
}

func TestFormatEuroFull(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "grouped_thousands", raw: "1234567.89", want: "1.234.567,89 €"},
		{name: "small_amount", raw: "12.5", want: "12,50 €"},
		{name: "zero", raw: "0", want: "0,00 €"},
		{name: "negative", raw: "-1500", want: "-1.500,00 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, FormatEuroFull(amount))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "42", FormatCount(42))
	assert.Equal(t, "1.5K", FormatCount(1500))
	assert.Equal(t, "2.0M", FormatCount(2000000))
}

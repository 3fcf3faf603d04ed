// Package money implements exact minor-unit arithmetic for monetary values.
//
// All amounts are stored as integer cents of a specific currency. Floating
// point is never used for stored values so that repeated aggregation cannot
// accumulate rounding drift. Rounding to the nearest cent happens at the
// point of computation, half away from zero.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Currencies is the fixed set of supported currency codes. Amounts,
// companies and debts in any other currency are rejected at input
// validation.
var Currencies = []string{"EUR", "XAF"}

var (
	ErrInvalidAmount        = errors.New("the amount is not a valid decimal number")
	ErrAmountNotPositive    = errors.New("the amount must be larger than zero")
	ErrCurrencyNotSupported = errors.New("this currency is not supported")
)

// Valid reports whether a currency code is in the supported set.
func Valid(currency string) bool {
	return slices.Contains(Currencies, currency)
}

// ParseCents parses a decimal string into integer cents.
//
// Both "." and "," are accepted as the fractional separator. The value is
// rounded to two decimal places, half up, before conversion.
func ParseCents(amount, currency string) (int64, error) {
	if !Valid(currency) {
		return 0, ErrCurrencyNotSupported
	}

	dec, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(amount), ",", ".", 1))
	if err != nil {
		return 0, ErrInvalidAmount
	}

	// Validate after rounding so that amounts below half a cent
	// cannot create zero-cent rows.
	cents := dec.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	if cents <= 0 {
		return 0, ErrAmountNotPositive
	}

	return cents, nil
}

// CentsString renders integer cents as a fixed two-decimal string,
// e.g. 12345 becomes "123.45".
func CentsString(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// CentsMapStrings converts a currency to cents map into its display form.
func CentsMapStrings(m map[string]int64) map[string]string {
	out := make(map[string]string, len(m))
	for currency, cents := range m {
		out[currency] = CentsString(cents)
	}

	return out
}

// Package money converts between user-typed amounts, exact decimals and
// display strings.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no valid currency is configured.
const DefaultCurrency = "BRL"

// Parse converts a typed amount such as "1500.50" into a float64. A lone
// comma is read as the decimal separator so "1500,50" parses the same way.
func Parse(s string) (float64, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// ParseOptional is Parse for nullable fields: blank input yields nil.
func ParseOptional(s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseDecimal parses s into an exact decimal.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Currency returns code in upper case when go-money knows it, else DefaultCurrency.
func Currency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if gomoney.GetCurrency(code) == nil {
		return DefaultCurrency
	}
	return code
}

// Format renders amount in the given currency, e.g. 1234.5 BRL as "R$1.234,50".
func Format(amount float64, code string) string {
	code = Currency(code)
	fraction := gomoney.GetCurrency(code).Fraction
	minor := decimal.NewFromFloat(amount).Shift(int32(fraction)).Round(0).IntPart()
	return gomoney.New(minor, code).Display()
}

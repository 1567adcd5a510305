package http

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a positive monetary amount from a request field.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, BadRequestErrorf("amount %q is not a number", s).WithError(err)
	}
	if !d.IsPositive() {
		return decimal.Zero, BadRequestError("amount must be greater than zero").WithParam("amount", s)
	}
	return d, nil
}

// NormalizeCurrency upper-cases an ISO 4217 code, defaulting to def.
func NormalizeCurrency(s, def string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	return s
}

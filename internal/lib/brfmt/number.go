// Package brfmt formats and parses values the way Brazilian users read and
// type them: "1.234,50" quantities, "R$" currency, dd/mm/yyyy dates and the
// CNPJ/CPF/CEP document masks.
package brfmt

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmpty is returned when there is nothing left to parse after sanitizing.
var ErrEmpty = errors.New("brfmt: empty value")

const (
	thousandSep = "."
	decimalSep  = ","
	currency    = "R$ "
)

// FormatQuantity renders v with the given number of decimal places using
// "." as the thousands separator and "," as the decimal separator.
//
//	FormatQuantity(1234.5, 2) -> "1.234,50"
func FormatQuantity(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return formatDecimal(decimal.NewFromFloat(v), int32(decimals))
}

func formatDecimal(d decimal.Decimal, places int32) string {
	fixed := d.StringFixed(places)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative && strings.Trim(fixed, "0.") != "" {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(intPart))
	if fracPart != "" {
		b.WriteString(decimalSep)
		b.WriteString(fracPart)
	}
	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(thousandSep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseQuantity is the inverse of FormatQuantity. It also accepts values
// without grouping ("1234,5") and plain dot decimals ("1234.5").
//
// Without a comma, a single dot is read as a thousands separator only when it
// follows a one to three digit group without a leading zero and is followed
// by exactly three digits ("1.234" is 1234). Otherwise it is a decimal point
// ("1234.567", "0.125").
func ParseQuantity(s string) (float64, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// ParseDecimal parses a Brazilian-formatted number into a decimal.Decimal.
func ParseDecimal(s string) (decimal.Decimal, error) {
	clean := SanitizeQuantityInput(strings.TrimSpace(s))
	if clean == "" || clean == "-" {
		return decimal.Zero, ErrEmpty
	}

	switch {
	case strings.Contains(clean, decimalSep):
		clean = strings.ReplaceAll(clean, thousandSep, "")
		clean = strings.Replace(clean, decimalSep, ".", 1)
	case strings.Count(clean, thousandSep) > 1:
		clean = strings.ReplaceAll(clean, thousandSep, "")
	case strings.Count(clean, thousandSep) == 1:
		whole, frac, _ := strings.Cut(clean, thousandSep)
		if len(frac) == 3 && isLeadingGroup(strings.TrimPrefix(whole, "-")) {
			clean = strings.ReplaceAll(clean, thousandSep, "")
		}
	}

	return decimal.NewFromString(clean)
}

// isLeadingGroup reports whether s can start a dotted thousands grouping:
// one to three digits without a leading zero.
func isLeadingGroup(s string) bool {
	if len(s) == 0 || len(s) > 3 || s[0] == '0' {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SanitizeQuantityInput drops every character a quantity field does not
// accept. Digits, "," and "." are kept; "-" survives only as the first character.
func SanitizeQuantityInput(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCurrency renders v as Brazilian reais: "R$ 1.234,50", "-R$ 3,25".
func FormatCurrency(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.Round(2).IsNegative() {
		return "-" + currency + formatDecimal(d.Neg(), 2)
	}
	return currency + formatDecimal(d, 2)
}

// ParseCurrency parses values produced by FormatCurrency, with or without the symbol.
func ParseCurrency(s string) (float64, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSpace(strings.TrimPrefix(s, strings.TrimSpace(currency)))

	v, err := ParseQuantity(s)
	if err != nil {
		return 0, err
	}
	if negative {
		v = -v
	}
	return v, nil
}

package brfmt

import "strings"

const (
	CNPJLength = 14
	CPFLength  = 11
	CEPLength  = 8
)

// OnlyDigits strips everything but ASCII digits.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCNPJ masks a CNPJ as 00.000.000/0000-00.
//
// Partial input is masked as far as it goes, and anything past 14 digits is dropped.
func FormatCNPJ(s string) string {
	return mask(OnlyDigits(s), CNPJLength, []maskPart{
		{at: 2, sep: "."},
		{at: 5, sep: "."},
		{at: 8, sep: "/"},
		{at: 12, sep: "-"},
	})
}

// FormatCPF masks a CPF as 000.000.000-00, progressively like FormatCNPJ.
func FormatCPF(s string) string {
	return mask(OnlyDigits(s), CPFLength, []maskPart{
		{at: 3, sep: "."},
		{at: 6, sep: "."},
		{at: 9, sep: "-"},
	})
}

// FormatCEP masks a CEP as 00000-000. Up to five digits are returned unmasked.
func FormatCEP(s string) string {
	return mask(OnlyDigits(s), CEPLength, []maskPart{{at: 5, sep: "-"}})
}

// FormatDocument picks the CPF or CNPJ mask based on the number of digits.
func FormatDocument(s string) string {
	if len(OnlyDigits(s)) > CPFLength {
		return FormatCNPJ(s)
	}
	return FormatCPF(s)
}

type maskPart struct {
	at  int
	sep string
}

func mask(digits string, limit int, parts []maskPart) string {
	if len(digits) > limit {
		digits = digits[:limit]
	}

	var b strings.Builder
	prev := 0
	for _, p := range parts {
		if len(digits) <= p.at {
			break
		}
		b.WriteString(digits[prev:p.at])
		b.WriteString(p.sep)
		prev = p.at
	}
	b.WriteString(digits[prev:])
	return b.String()
}

// ValidCNPJ checks length and both verification digits.
func ValidCNPJ(s string) bool {
	d := OnlyDigits(s)
	if len(d) != CNPJLength || repeated(d) {
		return false
	}

	first := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	second := append([]int{6}, first...)

	return checkDigit(d[:12], first) == int(d[12]-'0') &&
		checkDigit(d[:13], second) == int(d[13]-'0')
}

func checkDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

// ValidCPF checks length and both verification digits.
func ValidCPF(s string) bool {
	d := OnlyDigits(s)
	if len(d) != CPFLength || repeated(d) {
		return false
	}

	for n := 9; n <= 10; n++ {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * (n + 1 - i)
		}
		r := sum * 10 % 11
		if r == 10 {
			r = 0
		}
		if r != int(d[n]-'0') {
			return false
		}
	}
	return true
}

func repeated(d string) bool {
	return strings.Count(d, d[:1]) == len(d)
}

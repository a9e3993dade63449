package brfmt

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04"
	isoDateLayout  = "2006-01-02"
)

// FormatDate renders t as dd/mm/yyyy. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDateTime renders t as dd/mm/yyyy HH:MM. The zero time renders as "".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}

// ParseDate accepts dd/mm/yyyy as well as ISO yyyy-mm-dd.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmpty
	}

	for _, layout := range []string{DateLayout, isoDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("brfmt: invalid date %q", s)
}

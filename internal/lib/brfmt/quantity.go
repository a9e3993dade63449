package brfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Quantity is a float64 that unmarshals from either a JSON number or a
// Brazilian-formatted string ("1.234,5"). It always marshals as a number.
type Quantity float64

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseQuantity(s)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", s, err)
		}
		*q = Quantity(v)
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid quantity %s: %w", data, err)
	}
	*q = Quantity(v)
	return nil
}

// Float64 returns q as a plain float64.
func (q Quantity) Float64() float64 {
	return float64(q)
}

package brfmt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{1234.5, 2, "1.234,50"},
		{0, 2, "0,00"},
		{-3.25, 2, "-3,25"},
		{1234567.891, 3, "1.234.567,891"},
		{999, 0, "999"},
		{100000, 0, "100.000"},
		{-0.001, 2, "0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatQuantity(tt.v, tt.decimals))
		})
	}
}

func TestQuantityRoundTrip(t *testing.T) {
	for _, v := range []float64{1234.5, 0, -3.25, 0.01, 98765.43, -1000000} {
		got, err := ParseQuantity(FormatQuantity(v, 2))
		require.NoError(t, err)
		assert.InDelta(t, v, got, 0.005)
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.234,5", 1234.5},
		{"1234,5", 1234.5},
		{"-3,25", -3.25},
		{"1234.5", 1234.5},
		{"1.234", 1234},
		{"1.234.567", 1234567},
		{"1234.567", 1234.567},
		{"0.125", 0.125},
		{"-0.250", -0.25},
		{"-1.500", -1500},
		{"1500.750", 1500.75},
		{"01.234", 1.234},
		{" 12 sacas", 12},
		{"R$ 10,00", 10},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("empty", func(t *testing.T) {
		_, err := ParseQuantity("abc")
		assert.ErrorIs(t, err, ErrEmpty)
	})
}

func TestSanitizeQuantityInput(t *testing.T) {
	assert.Equal(t, "-1.234,5", SanitizeQuantityInput("-1.234,5"))
	assert.Equal(t, "12,5", SanitizeQuantityInput("12a,5b"))
	assert.Equal(t, "125", SanitizeQuantityInput("1-25"))
	assert.Equal(t, "", SanitizeQuantityInput("kg"))
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", FormatCurrency(1234.5))
	assert.Equal(t, "-R$ 3,25", FormatCurrency(-3.25))
	assert.Equal(t, "R$ 0,00", FormatCurrency(0))

	v, err := ParseCurrency("R$ 1.234,50")
	require.NoError(t, err)
	assert.InDelta(t, 1234.5, v, 1e-9)

	v, err = ParseCurrency("-R$ 3,25")
	require.NoError(t, err)
	assert.InDelta(t, -3.25, v, 1e-9)
}

func TestDates(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 14, 5, 0, 0, time.UTC)

	assert.Equal(t, "07/03/2025", FormatDate(ts))
	assert.Equal(t, "07/03/2025 14:05", FormatDateTime(ts))
	assert.Equal(t, "", FormatDate(time.Time{}))

	for _, in := range []string{"07/03/2025", "2025-03-07"} {
		got, err := ParseDate(in)
		require.NoError(t, err)
		assert.Equal(t, "07/03/2025", FormatDate(got))
	}

	_, err := ParseDate("31/02")
	assert.Error(t, err)
}

func TestFormatCNPJ(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"11222333000181", "11.222.333/0001-81"},
		{"11.222.333/0001-81", "11.222.333/0001-81"},
		{"11", "11"},
		{"112", "11.2"},
		{"112223", "11.222.3"},
		{"112223330001", "11.222.333/0001"},
		{"1122233300018199", "11.222.333/0001-81"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, FormatCNPJ(tt.in))
			})
		})
	}
}

func TestFormatCEP(t *testing.T) {
	assert.Equal(t, "01310-100", FormatCEP("01310100"))
	assert.Equal(t, "01310-100", FormatCEP("01310-100"))
	assert.Equal(t, "01310", FormatCEP("01310"))
	assert.Equal(t, "013", FormatCEP("013"))
	assert.Equal(t, "01310-1", FormatCEP("013101"))
	assert.Equal(t, "01310-100", FormatCEP("013101009"))
}

func TestFormatCPFAndDocument(t *testing.T) {
	assert.Equal(t, "529.982.247-25", FormatCPF("52998224725"))
	assert.Equal(t, "529.9", FormatCPF("5299"))
	assert.Equal(t, "529.982.247-25", FormatDocument("52998224725"))
	assert.Equal(t, "11.222.333/0001-81", FormatDocument("11222333000181"))
}

func TestDocumentValidation(t *testing.T) {
	assert.True(t, ValidCNPJ("11.222.333/0001-81"))
	assert.False(t, ValidCNPJ("11.222.333/0001-82"))
	assert.False(t, ValidCNPJ("11111111111111"))
	assert.False(t, ValidCNPJ("1122233300018"))

	assert.True(t, ValidCPF("529.982.247-25"))
	assert.False(t, ValidCPF("529.982.247-24"))
	assert.False(t, ValidCPF("00000000000"))
}

func TestQuantityJSON(t *testing.T) {
	var payload struct {
		A Quantity  `json:"a"`
		B Quantity  `json:"b"`
		C *Quantity `json:"c"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a": 12.5, "b": "1.234,5", "c": null}`), &payload))
	assert.InDelta(t, 12.5, payload.A.Float64(), 1e-9)
	assert.InDelta(t, 1234.5, payload.B.Float64(), 1e-9)
	assert.Nil(t, payload.C)

	out, err := json.Marshal(payload.B)
	require.NoError(t, err)
	assert.Equal(t, "1234.5", string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"a": "abc"}`), &payload))
}

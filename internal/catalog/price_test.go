package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "₦0"},
		{"Small integer", 999, "₦999"},
		{"K boundary", 1000, "₦1.0K"},
		{"Mid K", 45000, "₦45.0K"},
		{"K rounding", 45500, "₦45.5K"},
		// Divide-and-round only: 999999/1000 = 999.999 -> "1000.0K",
		// never promoted to M.
		{"Just below M boundary", 999999, "₦1000.0K"},
		{"M boundary", 1000000, "₦1.0M"},
		{"Above M", 2500000, "₦2.5M"},
		{"Fractional below K", 450.5, "₦450.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPrice(tt.amount))
		})
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12500, "12,500"},
		{1234567, "1,234,567"},
		{1500.5, "1,500.5"},
		{19.99, "19.99"},
		{0.05, "0.05"},
		{-2800, "-2,800"},
		{1e20, "100,000,000,000,000,000,000"},
		{-1e20, "-100,000,000,000,000,000,000"},
		{1e16, "10,000,000,000,000,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in), "FormatAmount(%v)", tt.in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "¥ 2,800", FormatPrice("¥", 2800))
	assert.Equal(t, "EUR 9,999", FormatPrice(" EUR ", 9999))
	assert.Equal(t, "150", FormatPrice("", 150))
}

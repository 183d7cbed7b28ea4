package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"goldenbites/internal/cart"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name    string
		entries []cart.Entry
		want    string
	}{
		{
			name:    "empty",
			entries: nil,
			want:    "0.00",
		},
		{
			name:    "single_line",
			entries: []cart.Entry{entry(1, 2, "50.00", 10)},
			want:    "100.00",
		},
		{
			name: "cents_do_not_drift",
			entries: []cart.Entry{
				entry(1, 3, "0.10", 10),
				entry(2, 3, "0.20", 10),
			},
			want: "0.90",
		},
		{
			name: "mixed_quantities",
			entries: []cart.Entry{
				entry(1, 7, "12.99", 10),
				entry(2, 1, "3.50", 10),
				entry(3, 2, "0.05", 10),
			},
			want: "94.53",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cart.ComputeTotal(tt.entries)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestEntryLineTotal(t *testing.T) {
	e := entry(1, 4, "2.25", 10)
	assert.True(t, decimal.RequireFromString("9.00").Equal(e.LineTotal()))
}

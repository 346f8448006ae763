package core_test

import (
	"testing"

	"petstore-backend/internal/core"

	"github.com/shopspring/decimal"
)

func TestRetailPrice(t *testing.T) {
	tests := []struct {
		unitCost string
		markup   string
		want     string
	}{
		{"100.00", "1.20", "120"},
		{"99.99", "1.20", "119.99"}, // 119.988 rounds up
		{"33.33", "1.50", "50"},     // 49.995 rounds up
		{"0.00", "1.20", "0"},
		{"250.00", "2.00", "500"},
	}
	for _, tt := range tests {
		cost := decimal.RequireFromString(tt.unitCost)
		markup := decimal.RequireFromString(tt.markup)
		got := core.RetailPrice(cost, markup)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("RetailPrice(%s, %s) = %s, want %s", tt.unitCost, tt.markup, got, tt.want)
		}
	}
}

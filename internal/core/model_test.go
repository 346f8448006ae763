package core_test

import (
	"testing"

	"petstore-backend/internal/core"
)

func TestFormattedProductID(t *testing.T) {
	tests := []struct {
		branch     core.Branch
		category   string
		itemNumber int
		want       string
	}{
		{core.BranchMatina, core.CategoryPetFood, 7, "M-A-007"},
		{core.BranchToril, core.CategoryPetFood, 7, "T-A-007"},
		{core.BranchMatina, core.CategoryCleaning, 1, "M-G-001"},
		{core.BranchMatina, core.CategoryHealth, 123, "M-C-123"},
		{core.BranchToril, "No Such Category", 5, "T-X-005"},
	}
	for _, tt := range tests {
		got := core.FormattedProductID(tt.branch, tt.category, tt.itemNumber)
		if got != tt.want {
			t.Errorf("FormattedProductID(%s, %s, %d) = %q, want %q",
				tt.branch, tt.category, tt.itemNumber, got, tt.want)
		}
	}
}

func TestComputeRemarks(t *testing.T) {
	tests := []struct {
		quantity     int
		reorderLevel int
		want         string
	}{
		{0, 10, core.RemarksOutOfStock},
		{0, 0, core.RemarksOutOfStock}, // zero quantity wins over threshold
		{5, 10, core.RemarksReorderSoon},
		{10, 10, core.RemarksReorderSoon},
		{11, 10, core.RemarksInStock},
		{100, 0, core.RemarksInStock},
	}
	for _, tt := range tests {
		got := core.ComputeRemarks(tt.quantity, tt.reorderLevel)
		if got != tt.want {
			t.Errorf("ComputeRemarks(%d, %d) = %q, want %q", tt.quantity, tt.reorderLevel, got, tt.want)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range core.Categories {
		if !core.ValidCategory(c) {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if core.ValidCategory("Aquarium Supplies") {
		t.Error("expected unknown category to be invalid")
	}
}

package core

import "fmt"

// Branch identifies a physical store location. Inventory and bookings are
// partitioned by branch.
type Branch string

const (
	BranchMatina Branch = "Matina"
	BranchToril  Branch = "Toril"
)

// Branches lists all valid branches in display order.
var Branches = []Branch{BranchMatina, BranchToril}

func (b Branch) Valid() bool {
	return b == BranchMatina || b == BranchToril
}

// code returns the single-letter branch code used in formatted product IDs.
func (b Branch) code() string {
	if b == BranchToril {
		return "T"
	}
	return "M"
}

// Product categories (display names, fixed set).
const (
	CategoryPetFood     = "Pet Food & Treats"
	CategoryGrooming    = "Grooming & Hygiene"
	CategoryHealth      = "Health & Wellness"
	CategoryAccessories = "Accessories & Toys"
	CategoryCages       = "Cages & Bedding"
	CategoryFeeding     = "Feeding Supplies"
	CategoryCleaning    = "Cleaning Supplies"
)

// Categories lists all product categories in the order that defines their
// A–G letter codes.
var Categories = []string{
	CategoryPetFood,
	CategoryGrooming,
	CategoryHealth,
	CategoryAccessories,
	CategoryCages,
	CategoryFeeding,
	CategoryCleaning,
}

func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// categoryCode maps a category to its letter code (A–G), or "X" if unknown.
func categoryCode(category string) string {
	for i, known := range Categories {
		if category == known {
			return string(rune('A' + i))
		}
	}
	return "X"
}

// FormattedProductID renders the human-facing item code, e.g. "M-A-007" for
// item 7 of Pet Food & Treats at the Matina branch.
func FormattedProductID(branch Branch, category string, itemNumber int) string {
	return fmt.Sprintf("%s-%s-%03d", branch.code(), categoryCode(category), itemNumber)
}

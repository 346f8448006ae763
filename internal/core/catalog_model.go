package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable grooming/care offering. DurationMinutes drives the
// availability calculator; MayOverlap services never block a slot and are
// always bookable inside business hours.
type Service struct {
	ID              int      `json:"id"`
	Name            string   `json:"service_name"`
	Description     string   `json:"description"`
	Inclusions      []string `json:"inclusions"`
	DurationMinutes int      `json:"duration_minutes"`
	MayOverlap      bool     `json:"may_overlap"`

	// Booking role flags. Solo services can be attached to another booking
	// as add-ons.
	IsSolo          bool `json:"is_solo"`
	CanBeAddon      bool `json:"can_be_addon"`
	CanBeStandalone bool `json:"can_be_standalone"`

	// Pricing. Size prices apply when HasSizes is set; addon/standalone
	// prices apply per booking role. Unused tiers stay nil.
	HasSizes        bool             `json:"has_sizes"`
	BasePrice       decimal.Decimal  `json:"base_price"`
	SmallPrice      *decimal.Decimal `json:"small_price,omitempty"`
	MediumPrice     *decimal.Decimal `json:"medium_price,omitempty"`
	LargePrice      *decimal.Decimal `json:"large_price,omitempty"`
	ExtraLargePrice *decimal.Decimal `json:"extra_large_price,omitempty"`
	AddonPrice      *decimal.Decimal `json:"addon_price,omitempty"`
	StandalonePrice *decimal.Decimal `json:"standalone_price,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceInput is the caller-supplied portion of a Service.
type ServiceInput struct {
	Name            string           `json:"service_name"`
	Description     string           `json:"description"`
	Inclusions      []string         `json:"inclusions"`
	DurationMinutes int              `json:"duration_minutes"`
	MayOverlap      bool             `json:"may_overlap"`
	IsSolo          bool             `json:"is_solo"`
	CanBeAddon      bool             `json:"can_be_addon"`
	CanBeStandalone bool             `json:"can_be_standalone"`
	HasSizes        bool             `json:"has_sizes"`
	BasePrice       decimal.Decimal  `json:"base_price"`
	SmallPrice      *decimal.Decimal `json:"small_price"`
	MediumPrice     *decimal.Decimal `json:"medium_price"`
	LargePrice      *decimal.Decimal `json:"large_price"`
	ExtraLargePrice *decimal.Decimal `json:"extra_large_price"`
	AddonPrice      *decimal.Decimal `json:"addon_price"`
	StandalonePrice *decimal.Decimal `json:"standalone_price"`
}

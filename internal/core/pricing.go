package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// defaultMarkup applies when a category has no configured markup row.
var defaultMarkup = decimal.NewFromFloat(1.20)

// PricingEngine resolves the retail markup factor for a product category from
// the category_markups table. Markups are configuration data, not code: the
// seeded table can be edited without a deploy.
type PricingEngine interface {
	// ResolveMarkup returns the markup factor for a category, falling back to
	// the default factor when no row is configured.
	ResolveMarkup(ctx context.Context, category string) (decimal.Decimal, error)
}

type pricingEngine struct {
	db querier
}

// NewPricingEngine constructs a PricingEngine backed by the category_markups table.
func NewPricingEngine(db querier) PricingEngine {
	return &pricingEngine{db: db}
}

func (p *pricingEngine) ResolveMarkup(ctx context.Context, category string) (decimal.Decimal, error) {
	return resolveMarkup(ctx, p.db, category)
}

// resolveMarkup is shared so services can resolve inside their own transaction.
func resolveMarkup(ctx context.Context, q querier, category string) (decimal.Decimal, error) {
	var markup decimal.Decimal
	err := q.QueryRow(ctx,
		"SELECT markup FROM category_markups WHERE category = $1", category,
	).Scan(&markup)
	if errors.Is(err, pgx.ErrNoRows) {
		return defaultMarkup, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return markup, nil
}

// RetailPrice computes unit cost times markup, rounded to centavos.
func RetailPrice(unitCost, markup decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(markup).Round(2)
}

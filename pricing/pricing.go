// Package pricing derives cart totals from cart lines.
//
// Rounding order: the subtotal is summed exactly, shipping is decided on that exact
// subtotal, tax is computed from the exact subtotal, and each output (subtotal, shipping,
// tax, total) is rounded half-up to cents exactly once.
package pricing

import (
	"frozo-api/models"

	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

// Policy holds the shop's shipping and tax parameters.
type Policy struct {
	// Carts whose subtotal is strictly greater than this ship free.
	FreeShippingThreshold decimal.Decimal
	FlatShipping          decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShipping:          decimal.RequireFromString("5.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// Totals are the derived fields of a cart.
type Totals struct {
	TotalItems int
	Subtotal   float64
	Shipping   float64
	Tax        float64
	Total      float64
}

// Recompute derives totals for items. It has no side effects.
func (p Policy) Recompute(items []models.CartItem) Totals {
	subtotal := decimal.Zero
	totalItems := 0
	for _, item := range items {
		totalItems += item.Quantity
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	shipping := decimal.Zero
	if totalItems > 0 && !subtotal.GreaterThan(p.FreeShippingThreshold) {
		shipping = p.FlatShipping.Round(moneyPlaces)
	}

	tax := subtotal.Mul(p.TaxRate).Round(moneyPlaces)
	total := subtotal.Add(shipping).Add(tax).Round(moneyPlaces)

	return Totals{
		TotalItems: totalItems,
		Subtotal:   subtotal.Round(moneyPlaces).InexactFloat64(),
		Shipping:   shipping.InexactFloat64(),
		Tax:        tax.InexactFloat64(),
		Total:      total.InexactFloat64(),
	}
}

// Apply writes the recomputed totals onto cart. Items are left untouched.
func (p Policy) Apply(cart *models.Cart) {
	totals := p.Recompute(cart.Items)
	cart.TotalItems = totals.TotalItems
	cart.Subtotal = totals.Subtotal
	cart.Shipping = totals.Shipping
	cart.Tax = totals.Tax
	cart.Total = totals.Total
}

package costing

import (
	"math"

	"repairshop/internal/domain/entities"
)

// TaxRate is the flat service tax applied when a ledger has tax enabled.
const TaxRate = 0.12

// Totals is the derived aggregate of a cost ledger.
type Totals struct {
	Subtotal       float64
	DiscountAmount float64
	TaxAmount      float64
	Total          float64
}

// ComputeTotals derives ledger aggregates from items, discount and tax flag.
//
// This function is PURE:
//   - No side effects
//   - Fully deterministic, same inputs always give the same Totals
//
// Rounding is half-up to 2 decimals and happens at every derived step (item
// total, tax amount, grand total), not only at the end. A discount larger
// than the subtotal clamps the discounted base at zero.
func ComputeTotals(items []entities.LineItem, discount entities.Discount, taxEnabled bool) Totals {
	subtotal := 0.0
	for _, it := range items {
		subtotal += ItemTotal(it)
	}
	subtotal = Round2(subtotal)

	discountAmount := discount.Value
	if discount.Kind == entities.DiscountKindPercent {
		discountAmount = Round2(subtotal * discount.Value / 100)
	}

	afterDiscount := subtotal - discountAmount
	if afterDiscount < 0 {
		afterDiscount = 0
	}

	taxAmount := 0.0
	if taxEnabled {
		taxAmount = Round2(afterDiscount * TaxRate)
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          Round2(afterDiscount + taxAmount),
	}
}

// ItemTotal derives a line item total: round(quantity × unit price, 2).
func ItemTotal(it entities.LineItem) float64 {
	return Round2(float64(it.Quantity) * it.UnitPrice)
}

// Recalculate returns a copy of the ledger with every derived field (item
// totals and aggregates) recomputed. Invoked on every ledger mutation.
func Recalculate(l entities.CostLedger) entities.CostLedger {
	items := make([]entities.LineItem, len(l.Items))
	copy(items, l.Items)
	for i := range items {
		items[i].Total = ItemTotal(items[i])
	}
	l.Items = items
	t := ComputeTotals(l.Items, l.Discount, l.TaxEnabled)
	l.Subtotal = t.Subtotal
	l.DiscountAmount = t.DiscountAmount
	l.TaxAmount = t.TaxAmount
	l.Total = t.Total
	return l
}

// Round2 rounds half-up to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

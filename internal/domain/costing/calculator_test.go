package costing

import (
	"testing"

	"repairshop/internal/domain/entities"
)

func TestComputeTotals(t *testing.T) {
	t.Run("percent discount with tax", func(t *testing.T) {
		items := []entities.LineItem{
			{ID: "a", Quantity: 2, UnitPrice: 500},
			{ID: "b", Quantity: 1, UnitPrice: 1000},
		}
		discount := entities.Discount{Kind: entities.DiscountKindPercent, Value: 10}

		got := ComputeTotals(items, discount, true)

		if got.Subtotal != 2000 {
			t.Fatalf("expected subtotal 2000, got %v", got.Subtotal)
		}
		if got.DiscountAmount != 200 {
			t.Fatalf("expected discount amount 200, got %v", got.DiscountAmount)
		}
		if got.TaxAmount != 216 {
			t.Fatalf("expected tax amount 216, got %v", got.TaxAmount)
		}
		if got.Total != 2016 {
			t.Fatalf("expected total 2016, got %v", got.Total)
		}
	})

	t.Run("empty ledger", func(t *testing.T) {
		got := ComputeTotals(nil, entities.Discount{Kind: entities.DiscountKindFixed}, false)
		if got.Subtotal != 0 || got.DiscountAmount != 0 || got.TaxAmount != 0 || got.Total != 0 {
			t.Fatalf("expected all-zero totals, got %+v", got)
		}
	})

	t.Run("fixed discount larger than subtotal clamps at zero", func(t *testing.T) {
		items := []entities.LineItem{{ID: "a", Quantity: 1, UnitPrice: 50}}
		discount := entities.Discount{Kind: entities.DiscountKindFixed, Value: 100}

		got := ComputeTotals(items, discount, true)

		if got.Subtotal != 50 {
			t.Fatalf("expected subtotal 50, got %v", got.Subtotal)
		}
		if got.Total != 0 {
			t.Fatalf("expected total clamped to 0, got %v", got.Total)
		}
		if got.TaxAmount != 0 {
			t.Fatalf("expected no tax on a zero base, got %v", got.TaxAmount)
		}
	})

	t.Run("tax disabled", func(t *testing.T) {
		items := []entities.LineItem{{ID: "a", Quantity: 3, UnitPrice: 33.33}}
		got := ComputeTotals(items, entities.Discount{Kind: entities.DiscountKindFixed}, false)
		if got.TaxAmount != 0 {
			t.Fatalf("expected tax amount 0, got %v", got.TaxAmount)
		}
		if got.Total != got.Subtotal {
			t.Fatalf("expected total == subtotal, got %v vs %v", got.Total, got.Subtotal)
		}
	})

	t.Run("rounds at every step", func(t *testing.T) {
		// 3 x 33.335 = 100.005 -> 100.01 per item; tax 12.0012 -> 12.0.
		items := []entities.LineItem{{ID: "a", Quantity: 3, UnitPrice: 33.335}}
		got := ComputeTotals(items, entities.Discount{Kind: entities.DiscountKindFixed}, true)
		if got.Subtotal != 100.01 {
			t.Fatalf("expected subtotal 100.01, got %v", got.Subtotal)
		}
		if got.TaxAmount != 12.0 {
			t.Fatalf("expected tax amount 12.0, got %v", got.TaxAmount)
		}
		if got.Total != 112.01 {
			t.Fatalf("expected total 112.01, got %v", got.Total)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		items := []entities.LineItem{
			{ID: "a", Quantity: 7, UnitPrice: 19.99},
			{ID: "b", Quantity: 2, UnitPrice: 0.07},
		}
		discount := entities.Discount{Kind: entities.DiscountKindPercent, Value: 3.5}
		first := ComputeTotals(items, discount, true)
		for i := 0; i < 50; i++ {
			if got := ComputeTotals(items, discount, true); got != first {
				t.Fatalf("totals diverged on run %d: %+v vs %+v", i, got, first)
			}
		}
	})
}

func TestItemTotal(t *testing.T) {
	it := entities.LineItem{Quantity: 3, UnitPrice: 9.99}
	if got := ItemTotal(it); got != 29.97 {
		t.Fatalf("expected 29.97, got %v", got)
	}
}

func TestRecalculate(t *testing.T) {
	t.Run("recomputes stale derived fields", func(t *testing.T) {
		l := entities.CostLedger{
			Items: []entities.LineItem{
				{ID: "a", Quantity: 2, UnitPrice: 500, Total: 1},
			},
			Discount:   entities.Discount{Kind: entities.DiscountKindFixed, Value: 100},
			TaxEnabled: true,
			Subtotal:   -1,
			Total:      -1,
		}

		got := Recalculate(l)

		if got.Items[0].Total != 1000 {
			t.Fatalf("expected item total 1000, got %v", got.Items[0].Total)
		}
		if got.Subtotal != 1000 || got.DiscountAmount != 100 {
			t.Fatalf("unexpected aggregates: %+v", got)
		}
		if got.TaxAmount != 108 || got.Total != 1008 {
			t.Fatalf("expected tax 108 total 1008, got %+v", got)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		l := entities.CostLedger{
			Items: []entities.LineItem{{ID: "a", Quantity: 1, UnitPrice: 10, Total: 0}},
		}
		_ = Recalculate(l)
		if l.Items[0].Total != 0 {
			t.Fatalf("input ledger items were mutated: %+v", l.Items[0])
		}
	})
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{2.005, 2.0}, // 2.005 is stored below the midpoint in binary
		{0.125, 0.13},
		{2.004, 2.0},
		{-0.125, -0.13},
		{0, 0},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Fatalf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

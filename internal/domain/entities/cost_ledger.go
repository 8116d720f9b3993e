package entities

// DiscountKind selects how Discount.Value is interpreted.

type DiscountKind string

const (
	DiscountKindFixed   DiscountKind = "fixed"
	DiscountKindPercent DiscountKind = "percent"
)

type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

// LineItem is one billable entry on a ledger.
//
// Total is always derived (round(quantity × unit price, 2)); it is never
// assigned independently of quantity and price.
type LineItem struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// CostLedger is the itemized billing breakdown attached to a job record.
//
// Subtotal, DiscountAmount, TaxAmount and Total are derived fields,
// recomputed on every mutation by costing.ComputeTotals. A ledger is always
// persisted as a whole snapshot, never as a field diff.
type CostLedger struct {
	Items      []LineItem `json:"items"`
	Discount   Discount   `json:"discount"`
	TaxEnabled bool       `json:"tax_enabled"`

	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	Total          float64 `json:"total"`
}

package response

import (
	"time"

	"repairshop/internal/domain/entities"
)

type LineItemResponse struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type CostLedgerResponse struct {
	Items          []LineItemResponse `json:"items"`
	DiscountKind   string             `json:"discount_kind"`
	DiscountValue  float64            `json:"discount_value"`
	TaxEnabled     bool               `json:"tax_enabled"`
	Subtotal       float64            `json:"subtotal"`
	DiscountAmount float64            `json:"discount_amount"`
	TaxAmount      float64            `json:"tax_amount"`
	Total          float64            `json:"total"`
}

type JobRecordResponse struct {
	ID           string              `json:"id"`
	LookupCode   string              `json:"lookup_code"`
	Sequence     string              `json:"sequence"`
	Status       string              `json:"status"`
	Stage        string              `json:"stage"`
	ProgressStep int                 `json:"progress_step"`
	StageDetail  entities.StageDetail `json:"stage_detail,omitempty"`
	Ledger       CostLedgerResponse  `json:"ledger"`

	CreatedAt       time.Time  `json:"created_at"`
	StatusUpdatedAt time.Time  `json:"status_updated_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

func FromJobRecord(rec entities.JobRecord) JobRecordResponse {
	return JobRecordResponse{
		ID:              rec.ID,
		LookupCode:      rec.LookupCode,
		Sequence:        rec.Sequence,
		Status:          string(rec.Status),
		Stage:           string(rec.Stage),
		ProgressStep:    rec.Stage.ProgressStep(),
		StageDetail:     rec.StageDetail,
		Ledger:          fromLedger(rec.Ledger),
		CreatedAt:       rec.CreatedAt,
		StatusUpdatedAt: rec.StatusUpdatedAt,
		UpdatedAt:       rec.UpdatedAt,
		DeletedAt:       rec.DeletedAt,
	}
}

func FromJobRecords(recs []entities.JobRecord) []JobRecordResponse {
	out := make([]JobRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromJobRecord(rec))
	}
	return out
}

// CustomerViewResponse is the reduced read-only view behind a lookup code.
// No internal ids, no itemized ledger, just progress and the bottom line.
type CustomerViewResponse struct {
	LookupCode   string    `json:"lookup_code"`
	Sequence     string    `json:"sequence"`
	Status       string    `json:"status"`
	Stage        string    `json:"stage"`
	ProgressStep int       `json:"progress_step"`
	Total        float64   `json:"total"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func CustomerViewFromJobRecord(rec entities.JobRecord) CustomerViewResponse {
	return CustomerViewResponse{
		LookupCode:   rec.LookupCode,
		Sequence:     rec.Sequence,
		Status:       string(rec.Status),
		Stage:        string(rec.Stage),
		ProgressStep: rec.Stage.ProgressStep(),
		Total:        rec.Ledger.Total,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func fromLedger(l entities.CostLedger) CostLedgerResponse {
	items := make([]LineItemResponse, 0, len(l.Items))
	for _, it := range l.Items {
		items = append(items, LineItemResponse{
			ID:          it.ID,
			Category:    it.Category,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return CostLedgerResponse{
		Items:          items,
		DiscountKind:   string(l.Discount.Kind),
		DiscountValue:  l.Discount.Value,
		TaxEnabled:     l.TaxEnabled,
		Subtotal:       l.Subtotal,
		DiscountAmount: l.DiscountAmount,
		TaxAmount:      l.TaxAmount,
		Total:          l.Total,
	}
}

package request

import (
	"errors"
	"strings"

	"repairshop/internal/domain/entities"
	"repairshop/internal/usecase"
)

var ErrInvalidLedgerMutation = errors.New("invalid ledger mutation payload")

type LineItemRequest struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type DiscountRequest struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
}

// LedgerMutationRequest is one ledger operation against a job record.
//
//   - op=addItem:     item
//   - op=updateItem:  item_id + item
//   - op=removeItem:  item_id
//   - op=setDiscount: discount
//   - op=toggleTax:   no payload
type LedgerMutationRequest struct {
	Op       string           `json:"op" binding:"required"`
	Item     *LineItemRequest `json:"item"`
	ItemID   string           `json:"item_id"`
	Discount *DiscountRequest `json:"discount"`
}

// ResolveOp translates the payload into the domain operation. Structural
// mistakes (missing item for addItem, unknown op) fail here; value
// validation (quantity, price) belongs to the use case.
func (r LedgerMutationRequest) ResolveOp() (usecase.LedgerOp, error) {
	op := usecase.LedgerOp{Kind: usecase.LedgerOpKind(strings.TrimSpace(r.Op))}

	switch op.Kind {
	case usecase.LedgerOpAddItem:
		if r.Item == nil {
			return usecase.LedgerOp{}, ErrInvalidLedgerMutation
		}
		op.Item = r.Item.toEntity()

	case usecase.LedgerOpUpdateItem:
		if r.Item == nil || strings.TrimSpace(r.ItemID) == "" {
			return usecase.LedgerOp{}, ErrInvalidLedgerMutation
		}
		op.Item = r.Item.toEntity()
		op.ItemID = strings.TrimSpace(r.ItemID)

	case usecase.LedgerOpRemoveItem:
		if strings.TrimSpace(r.ItemID) == "" {
			return usecase.LedgerOp{}, ErrInvalidLedgerMutation
		}
		op.ItemID = strings.TrimSpace(r.ItemID)

	case usecase.LedgerOpSetDiscount:
		if r.Discount == nil {
			return usecase.LedgerOp{}, ErrInvalidLedgerMutation
		}
		op.Discount = entities.Discount{
			Kind:  entities.DiscountKind(strings.TrimSpace(r.Discount.Kind)),
			Value: r.Discount.Value,
		}

	case usecase.LedgerOpToggleTax:

	default:
		return usecase.LedgerOp{}, ErrInvalidLedgerMutation
	}
	return op, nil
}

func (r LineItemRequest) toEntity() entities.LineItem {
	return entities.LineItem{
		ID:          strings.TrimSpace(r.ID),
		Category:    strings.TrimSpace(r.Category),
		Description: strings.TrimSpace(r.Description),
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
	}
}

package usecase

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"repairshop/internal/domain/costing"
	"repairshop/internal/domain/entities"
)

var (
	ErrInvalidLedgerOp  = errors.New("invalid ledger operation")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidUnitPrice = errors.New("unit price must not be negative")
	ErrInvalidDiscount  = errors.New("invalid discount")
	ErrItemNotFound     = errors.New("line item not found")
)

// LedgerOpKind enumerates the mutations a ledger accepts.

type LedgerOpKind string

const (
	LedgerOpAddItem     LedgerOpKind = "addItem"
	LedgerOpUpdateItem  LedgerOpKind = "updateItem"
	LedgerOpRemoveItem  LedgerOpKind = "removeItem"
	LedgerOpSetDiscount LedgerOpKind = "setDiscount"
	LedgerOpToggleTax   LedgerOpKind = "toggleTax"
)

// LedgerOp is one mutation against a record's cost ledger.
//
//   - addItem: Item (ID assigned if empty)
//   - updateItem: ItemID + Item fields to apply
//   - removeItem: ItemID
//   - setDiscount: Discount
//   - toggleTax: no payload
type LedgerOp struct {
	Kind     LedgerOpKind
	Item     entities.LineItem
	ItemID   string
	Discount entities.Discount
}

// applyLedgerOp validates op and returns the mutated, fully recalculated
// ledger. Validation failures are returned before any state is touched; the
// input ledger is never modified.
func applyLedgerOp(l entities.CostLedger, op LedgerOp) (entities.CostLedger, error) {
	switch op.Kind {
	case LedgerOpAddItem:
		if err := validateItem(op.Item); err != nil {
			return entities.CostLedger{}, err
		}
		it := op.Item
		if strings.TrimSpace(it.ID) == "" {
			it.ID = uuid.NewString()
		}
		items := make([]entities.LineItem, len(l.Items), len(l.Items)+1)
		copy(items, l.Items)
		l.Items = append(items, it)

	case LedgerOpUpdateItem:
		if err := validateItem(op.Item); err != nil {
			return entities.CostLedger{}, err
		}
		idx := itemIndex(l.Items, op.ItemID)
		if idx < 0 {
			return entities.CostLedger{}, ErrItemNotFound
		}
		items := make([]entities.LineItem, len(l.Items))
		copy(items, l.Items)
		it := op.Item
		it.ID = op.ItemID
		items[idx] = it
		l.Items = items

	case LedgerOpRemoveItem:
		idx := itemIndex(l.Items, op.ItemID)
		if idx < 0 {
			return entities.CostLedger{}, ErrItemNotFound
		}
		items := make([]entities.LineItem, 0, len(l.Items)-1)
		items = append(items, l.Items[:idx]...)
		items = append(items, l.Items[idx+1:]...)
		l.Items = items

	case LedgerOpSetDiscount:
		if err := validateDiscount(op.Discount); err != nil {
			return entities.CostLedger{}, err
		}
		l.Discount = op.Discount

	case LedgerOpToggleTax:
		l.TaxEnabled = !l.TaxEnabled

	default:
		return entities.CostLedger{}, ErrInvalidLedgerOp
	}

	return costing.Recalculate(l), nil
}

// flushesImmediately reports whether op must skip debouncing. Discrete
// structural changes have to be visible to other sessions promptly; only
// in-place value edits (item fields, discount value) are coalesced.
func flushesImmediately(l entities.CostLedger, op LedgerOp) bool {
	switch op.Kind {
	case LedgerOpAddItem, LedgerOpRemoveItem, LedgerOpToggleTax:
		return true
	case LedgerOpSetDiscount:
		return op.Discount.Kind != l.Discount.Kind
	default:
		return false
	}
}

// debounceGroup keys the debounce timer so edits to one item do not cancel a
// pending flush for another item or for the discount.
func debounceGroup(op LedgerOp) string {
	switch op.Kind {
	case LedgerOpUpdateItem:
		return "item:" + op.ItemID
	case LedgerOpSetDiscount:
		return "discount"
	default:
		return "ledger"
	}
}

func validateItem(it entities.LineItem) error {
	if it.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if it.UnitPrice < 0 {
		return ErrInvalidUnitPrice
	}
	return nil
}

func validateDiscount(d entities.Discount) error {
	if d.Kind != entities.DiscountKindFixed && d.Kind != entities.DiscountKindPercent {
		return ErrInvalidDiscount
	}
	if d.Value < 0 {
		return ErrInvalidDiscount
	}
	return nil
}

func itemIndex(items []entities.LineItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind classifies a ledger item.
type ItemKind string

const (
	KindMovement   ItemKind = "movement"
	KindRecurring  ItemKind = "recurring"
	KindReceivable ItemKind = "receivable"
	KindPayable    ItemKind = "payable"

	// KindBalanceAdjustment is a historical kind kept for old rows; no
	// current operation produces or consumes it.
	KindBalanceAdjustment ItemKind = "balance_adjustment"
)

// MovementType indicates the direction of a movement item.
type MovementType string

const (
	Income  MovementType = "income"
	Expense MovementType = "expense"
)

// Item is one ledger entry. Amount is always a positive magnitude; the
// direction of its balance effect is derived from Kind and MovementType,
// never from the sign of Amount. MovementType is set only for movements,
// Active only for recurring/receivable/payable items.
type Item struct {
	ItemID       string          `json:"itemID"`
	Kind         ItemKind        `json:"kind"`
	MovementType *MovementType   `json:"movementType,omitempty"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Note         *string         `json:"note,omitempty"`
	Active       *bool           `json:"active,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// IsMovement reports whether the item realizes an immediate balance effect.
func (i Item) IsMovement() bool {
	return i.Kind == KindMovement
}

// IsOutstanding reports whether a receivable/payable is still open. Only an
// explicit false counts as settled; a missing flag is treated as outstanding.
func (i Item) IsOutstanding() bool {
	return i.Active == nil || *i.Active
}

// BalanceDelta returns the realized balance effect of a movement item:
// +Amount for income, -Amount for expense. Non-movement items have no
// realized effect while outstanding and return zero.
func (i Item) BalanceDelta() decimal.Decimal {
	if i.Kind != KindMovement || i.MovementType == nil {
		return decimal.Zero
	}
	if *i.MovementType == Income {
		return i.Amount
	}
	return i.Amount.Neg()
}

// SettlementDelta returns the balance effect of completing a receivable
// (+Amount, money received) or payable (-Amount, money paid). Zero for any
// other kind.
func (i Item) SettlementDelta() decimal.Decimal {
	switch i.Kind {
	case KindReceivable:
		return i.Amount
	case KindPayable:
		return i.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// SettlementMovementType returns the movement type realized by completing
// the item: income for receivables, expense for payables.
func (i Item) SettlementMovementType() MovementType {
	if i.Kind == KindReceivable {
		return Income
	}
	return Expense
}

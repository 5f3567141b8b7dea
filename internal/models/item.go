package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is the database representation of a ledger item row.
type Item struct {
	ItemID       string          `db:"item_id"`
	Kind         string          `db:"kind"`
	MovementType *string         `db:"movement_type"` // only for kind = movement
	Description  string          `db:"description"`
	Amount       decimal.Decimal `db:"amount"`
	Date         time.Time       `db:"date"`
	Note         *string         `db:"note"`
	Active       *bool           `db:"active"` // only for recurring/receivable/payable
	CreatedAt    time.Time       `db:"created_at"`
}

// ItemUpdate carries the subset of columns touched by a partial update.
// Nil fields are left unchanged.
type ItemUpdate struct {
	Description  *string
	Amount       *decimal.Decimal
	Date         *time.Time
	Note         *string
	MovementType *string
	Active       *bool
}

// IsEmpty reports whether the update would touch no columns.
func (u ItemUpdate) IsEmpty() bool {
	return u.Description == nil && u.Amount == nil && u.Date == nil &&
		u.Note == nil && u.MovementType == nil && u.Active == nil
}

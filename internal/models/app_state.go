package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceStateID is the fixed primary key of the singleton app_state row.
const BalanceStateID = 1

// AppState is the database representation of the singleton balance record.
type AppState struct {
	ID        int             `db:"id"`
	Balance   decimal.Decimal `db:"balance"`
	UpdatedAt time.Time       `db:"updated_at"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceState is the singleton running cash balance. Exactly one instance
// exists for the whole ledger; it is only ever upserted, never created or
// destroyed. Balance may go negative.
type BalanceState struct {
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

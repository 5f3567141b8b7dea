package dto

import (
	"time"

	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetBalanceRequest overwrites the running balance directly, bypassing the
// sign rule. Zero is a valid target, hence the pointer.
type SetBalanceRequest struct {
	Balance *decimal.Decimal `json:"balance" binding:"required"`
}

// BalanceResponse defines the data returned for the balance record.
type BalanceResponse struct {
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToBalanceResponse converts a domain.BalanceState to its DTO.
func ToBalanceResponse(s domain.BalanceState) BalanceResponse {
	return BalanceResponse{
		Balance:   s.Balance,
		UpdatedAt: s.UpdatedAt,
	}
}

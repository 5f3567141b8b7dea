package mapping

import (
	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	"github.com/pairledger/pair_ledger_app/internal/models"
)

// ToDomainBalanceState converts a model AppState to a domain BalanceState.
func ToDomainBalanceState(m models.AppState) domain.BalanceState {
	return domain.BalanceState{
		Balance:   m.Balance,
		UpdatedAt: m.UpdatedAt,
	}
}

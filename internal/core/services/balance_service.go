package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	portsrepo "github.com/pairledger/pair_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pairledger/pair_ledger_app/internal/core/ports/services"
	"github.com/pairledger/pair_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// balanceService is the single owner of the balance record. All balance
// reads and writes in the system go through it, so concurrency control can
// be tightened here without touching the callers.
//
// ApplyDelta is a plain read-modify-write: two concurrent mutations can
// race and the last write wins. Acceptable for the two-human-users target;
// a compare-and-swap on the last-known value would close the gap.
type balanceService struct {
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// NewBalanceService creates the balance service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepositoryFacade) portssvc.BalanceSvcFacade {
	return &balanceService{balanceRepo: balanceRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetBalance returns the current balance state; a never-written record
// reads as zero.
func (s *balanceService) GetBalance(ctx context.Context) (domain.BalanceState, error) {
	state, err := s.balanceRepo.GetBalance(ctx)
	if err != nil {
		return domain.BalanceState{}, fmt.Errorf("failed to read balance: %w", err)
	}
	return state, nil
}

// SetBalance overwrites the balance unconditionally (administrative
// override; no item is involved and the sign rule does not apply).
func (s *balanceService) SetBalance(ctx context.Context, value decimal.Decimal) (domain.BalanceState, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.balanceRepo.UpsertBalance(ctx, value, now); err != nil {
		return domain.BalanceState{}, fmt.Errorf("failed to set balance: %w", err)
	}

	logger.Info("Balance overwritten", "balance", value.String())
	return domain.BalanceState{Balance: value, UpdatedAt: now}, nil
}

// ApplyDelta adds delta to the current balance.
func (s *balanceService) ApplyDelta(ctx context.Context, delta decimal.Decimal) error {
	state, err := s.balanceRepo.GetBalance(ctx)
	if err != nil {
		return fmt.Errorf("failed to read balance before applying delta: %w", err)
	}

	next := state.Balance.Add(delta)
	if err := s.balanceRepo.UpsertBalance(ctx, next, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert balance: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Balance delta applied",
		"delta", delta.String(), "balance", next.String())
	return nil
}

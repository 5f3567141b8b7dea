package services

import (
	"context"

	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	"github.com/pairledger/pair_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the balance ledger engine: every mutating operation on
// items, with its balance effect applied as part of the same logical unit.
type LedgerSvcFacade interface {
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*domain.Item, error)
	EditItem(ctx context.Context, itemID string, req dto.UpdateItemRequest) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
	CompleteItem(ctx context.Context, itemID string) (*domain.Completion, error)
}

// BalanceSvcFacade owns all reads and writes of the singleton balance.
// Every balance mutation in the system goes through this one service, so
// stronger concurrency control can later be added in a single place.
type BalanceSvcFacade interface {
	GetBalance(ctx context.Context) (domain.BalanceState, error)
	// SetBalance overwrites the balance unconditionally (administrative
	// override, bypassing the sign rule).
	SetBalance(ctx context.Context, value decimal.Decimal) (domain.BalanceState, error)
	// ApplyDelta adds delta to the current balance (read-modify-write).
	ApplyDelta(ctx context.Context, delta decimal.Decimal) error
}

// DashboardSvcFacade derives the presented dashboard view; pure read.
type DashboardSvcFacade interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
}

// HistorySvcFacade filters the full item collection for the audit view;
// pure read.
type HistorySvcFacade interface {
	ListHistory(ctx context.Context, kindFilter string, query string) ([]domain.Item, error)
}

// ServiceContainer bundles the services handed to the HTTP layer.
type ServiceContainer struct {
	Ledger    LedgerSvcFacade
	Balance   BalanceSvcFacade
	Dashboard DashboardSvcFacade
	History   HistorySvcFacade
}

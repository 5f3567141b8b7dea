package services_test

import (
	"context"
	"time"

	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	portsrepo "github.com/pairledger/pair_ledger_app/internal/core/ports/repositories"
	"github.com/pairledger/pair_ledger_app/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ItemRepository ---
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) SaveItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateItem(ctx context.Context, itemID string, update models.ItemUpdate) (*domain.Item, error) {
	args := m.Called(ctx, itemID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) DeleteItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockItemRepository) MarkItemCompleted(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockItemRepository) ListItems(ctx context.Context, filter portsrepo.ListItemsFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) SearchItems(ctx context.Context, filter portsrepo.SearchItemsFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) GetBalance(ctx context.Context) (domain.BalanceState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.BalanceState), args.Error(1)
}

func (m *MockBalanceService) SetBalance(ctx context.Context, value decimal.Decimal) (domain.BalanceState, error) {
	args := m.Called(ctx, value)
	return args.Get(0).(domain.BalanceState), args.Error(1)
}

func (m *MockBalanceService) ApplyDelta(ctx context.Context, delta decimal.Decimal) error {
	args := m.Called(ctx, delta)
	return args.Error(0)
}

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetBalance(ctx context.Context) (domain.BalanceState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.BalanceState), args.Error(1)
}

func (m *MockBalanceRepository) UpsertBalance(ctx context.Context, value decimal.Decimal, updatedAt time.Time) error {
	args := m.Called(ctx, value, updatedAt)
	return args.Error(0)
}

// deltaMatcher matches an ApplyDelta argument by decimal equality.
func deltaMatcher(expected decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(expected)
	})
}

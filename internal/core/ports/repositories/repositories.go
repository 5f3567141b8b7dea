package repositories

import (
	"context"
	"time"

	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	"github.com/pairledger/pair_ledger_app/internal/models"
	"github.com/shopspring/decimal"
)

// ListItemsOrder selects the ordering of a filtered item listing.
type ListItemsOrder string

const (
	OrderByDateDesc      ListItemsOrder = "date_desc"
	OrderByCreatedAtDesc ListItemsOrder = "created_at_desc"
)

// ListItemsFilter restricts and orders an item listing.
type ListItemsFilter struct {
	Kind       *domain.ItemKind
	ActiveOnly bool // only items with active = true
	OrderBy    ListItemsOrder
}

// SearchItemsFilter restricts a history search. DescriptionQuery is a
// case-insensitive substring match; empty means no text restriction.
type SearchItemsFilter struct {
	Kind             *domain.ItemKind
	MovementType     *domain.MovementType
	DescriptionQuery string
}

// ItemRepositoryFacade defines the persistence operations for ledger items.
type ItemRepositoryFacade interface {
	// SaveItem inserts a new item; the store assigns ItemID and CreatedAt
	// and the persisted item is returned.
	SaveItem(ctx context.Context, item domain.Item) (*domain.Item, error)
	FindItemByID(ctx context.Context, itemID string) (*domain.Item, error)
	// UpdateItem applies a partial update; nil fields are left unchanged.
	UpdateItem(ctx context.Context, itemID string, update models.ItemUpdate) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
	// MarkItemCompleted flips active to false, guarded so an item that is
	// already settled reports apperrors.ErrAlreadyCompleted instead of
	// flipping twice.
	MarkItemCompleted(ctx context.Context, itemID string) error
	ListItems(ctx context.Context, filter ListItemsFilter) ([]domain.Item, error)
	// SearchItems returns matching items ordered by date descending.
	SearchItems(ctx context.Context, filter SearchItemsFilter) ([]domain.Item, error)
}

// BalanceRepositoryFacade defines the persistence operations for the
// singleton balance record.
type BalanceRepositoryFacade interface {
	// GetBalance returns the current balance state, or a zero state if the
	// record has never been written.
	GetBalance(ctx context.Context) (domain.BalanceState, error)
	UpsertBalance(ctx context.Context, value decimal.Decimal, updatedAt time.Time) error
}

// RepositoryContainer bundles the repositories handed to the service layer.
type RepositoryContainer struct {
	Item    ItemRepositoryFacade
	Balance BalanceRepositoryFacade
}

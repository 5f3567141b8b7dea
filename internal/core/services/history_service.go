package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	portsrepo "github.com/pairledger/pair_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pairledger/pair_ledger_app/internal/core/ports/services"
	"github.com/pairledger/pair_ledger_app/internal/middleware"
)

// historyService filters the full item collection for the audit view.
type historyService struct {
	itemRepo portsrepo.ItemRepositoryFacade
}

// NewHistoryService creates the history query service.
func NewHistoryService(itemRepo portsrepo.ItemRepositoryFacade) portssvc.HistorySvcFacade {
	return &historyService{itemRepo: itemRepo}
}

var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// ListHistory returns items matching the kind filter and description
// substring, ordered by date descending. "income" and "expense" are virtual
// filters over movements; an unrecognized filter value falls back to no
// kind restriction rather than erroring.
func (s *historyService) ListHistory(ctx context.Context, kindFilter string, query string) ([]domain.Item, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.SearchItemsFilter{DescriptionQuery: strings.TrimSpace(query)}
	switch kindFilter {
	case "income":
		kind, movementType := domain.KindMovement, domain.Income
		filter.Kind, filter.MovementType = &kind, &movementType
	case "expense":
		kind, movementType := domain.KindMovement, domain.Expense
		filter.Kind, filter.MovementType = &kind, &movementType
	case string(domain.KindMovement), string(domain.KindRecurring), string(domain.KindReceivable), string(domain.KindPayable):
		kind := domain.ItemKind(kindFilter)
		filter.Kind = &kind
	default:
		// "all", empty, or anything unrecognized: no kind restriction.
	}

	items, err := s.itemRepo.SearchItems(ctx, filter)
	if err != nil {
		logger.Error("Failed to search history", "error", err)
		return nil, fmt.Errorf("failed to retrieve history: %w", err)
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

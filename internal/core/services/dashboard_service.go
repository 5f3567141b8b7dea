package services

import (
	"context"
	"fmt"

	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	portsrepo "github.com/pairledger/pair_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pairledger/pair_ledger_app/internal/core/ports/services"
	"github.com/pairledger/pair_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// dashboardService projects the dashboard view from the item collection and
// the balance record. Pure read, no mutation.
type dashboardService struct {
	itemRepo   portsrepo.ItemRepositoryFacade
	balanceSvc portssvc.BalanceSvcFacade
}

// NewDashboardService creates the dashboard aggregator.
func NewDashboardService(itemRepo portsrepo.ItemRepositoryFacade, balanceSvc portssvc.BalanceSvcFacade) portssvc.DashboardSvcFacade {
	return &dashboardService{itemRepo: itemRepo, balanceSvc: balanceSvc}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// GetDashboard fans out the four independent reads concurrently: balance,
// active recurring charges (newest setup first) and open receivables and
// payables (nearest due date first).
func (s *dashboardService) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var (
		state      domain.BalanceState
		recurring  []domain.Item
		receivable []domain.Item
		payable    []domain.Item
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		state, err = s.balanceSvc.GetBalance(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recurring, err = s.listActive(gctx, domain.KindRecurring, portsrepo.OrderByCreatedAtDesc)
		return err
	})
	g.Go(func() error {
		var err error
		receivable, err = s.listActive(gctx, domain.KindReceivable, portsrepo.OrderByDateDesc)
		return err
	})
	g.Go(func() error {
		var err error
		payable, err = s.listActive(gctx, domain.KindPayable, portsrepo.OrderByDateDesc)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to build dashboard", "error", err)
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	return &domain.Dashboard{
		Balance:    state.Balance,
		Recurring:  sectionOf(recurring),
		Receivable: sectionOf(receivable),
		Payable:    sectionOf(payable),
	}, nil
}

func (s *dashboardService) listActive(ctx context.Context, kind domain.ItemKind, orderBy portsrepo.ListItemsOrder) ([]domain.Item, error) {
	return s.itemRepo.ListItems(ctx, portsrepo.ListItemsFilter{
		Kind:       &kind,
		ActiveOnly: true,
		OrderBy:    orderBy,
	})
}

// sectionOf totals a filtered item set. Amounts are positive magnitudes, so
// totals are never negative; an empty set yields total zero and an empty
// list.
func sectionOf(items []domain.Item) domain.DashboardSection {
	if items == nil {
		items = []domain.Item{}
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return domain.DashboardSection{Total: total, Items: items}
}

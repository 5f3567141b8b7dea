package services

import (
	portsrepo "github.com/pairledger/pair_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pairledger/pair_ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires the service layer from the repository container.
func NewServiceContainer(repos *portsrepo.RepositoryContainer) *portssvc.ServiceContainer {
	balanceSvc := NewBalanceService(repos.Balance)
	return &portssvc.ServiceContainer{
		Balance:   balanceSvc,
		Ledger:    NewLedgerService(repos.Item, balanceSvc),
		Dashboard: NewDashboardService(repos.Item, balanceSvc),
		History:   NewHistoryService(repos.Item),
	}
}

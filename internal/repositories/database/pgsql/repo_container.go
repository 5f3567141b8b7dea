package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/pairledger/pair_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryContainer wires the pgsql repositories over one pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *portsrepo.RepositoryContainer {
	return &portsrepo.RepositoryContainer{
		Item:    newPgxItemRepository(pool),
		Balance: newPgxBalanceRepository(pool),
	}
}

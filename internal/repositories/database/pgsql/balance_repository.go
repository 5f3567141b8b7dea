package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	portsrepo "github.com/pairledger/pair_ledger_app/internal/core/ports/repositories"
	"github.com/pairledger/pair_ledger_app/internal/models"
	"github.com/pairledger/pair_ledger_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates the repository for the singleton balance
// record.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

// GetBalance reads the balance record. A missing row reads as a zero state,
// not an error.
func (r *PgxBalanceRepository) GetBalance(ctx context.Context) (domain.BalanceState, error) {
	query := `SELECT id, balance, updated_at FROM app_state WHERE id = $1;`

	var state models.AppState
	err := r.Pool.QueryRow(ctx, query, models.BalanceStateID).Scan(&state.ID, &state.Balance, &state.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BalanceState{Balance: decimal.Zero}, nil
		}
		return domain.BalanceState{}, fmt.Errorf("failed to read balance state: %w", err)
	}

	return mapping.ToDomainBalanceState(state), nil
}

// UpsertBalance writes the balance record, creating it on first write.
func (r *PgxBalanceRepository) UpsertBalance(ctx context.Context, value decimal.Decimal, updatedAt time.Time) error {
	query := `
		INSERT INTO app_state (id, balance, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance, updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, models.BalanceStateID, value, updatedAt); err != nil {
		return fmt.Errorf("failed to upsert balance state: %w", err)
	}
	return nil
}

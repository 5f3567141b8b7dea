package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides the shared connection pool for all repositories.
//
// Deliberately no transaction helpers: multi-step ledger operations report
// partial failures per sub-step instead of rolling back, so each statement
// runs on the pool directly.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

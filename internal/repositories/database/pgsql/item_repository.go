package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pairledger/pair_ledger_app/internal/apperrors"
	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	portsrepo "github.com/pairledger/pair_ledger_app/internal/core/ports/repositories"
	"github.com/pairledger/pair_ledger_app/internal/models"
	"github.com/pairledger/pair_ledger_app/internal/utils/mapping"
)

const itemColumns = "item_id, kind, movement_type, description, amount, date, note, active, created_at"

type PgxItemRepository struct {
	BaseRepository
}

// newPgxItemRepository creates the repository for ledger item rows.
func newPgxItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepositoryFacade {
	return &PgxItemRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

// SaveItem inserts a new item row, assigning its id and creation timestamp.
func (r *PgxItemRepository) SaveItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	modelItem := mapping.ToModelItem(item)
	modelItem.ItemID = uuid.NewString()
	modelItem.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO items (item_id, kind, movement_type, description, amount, date, note, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelItem.ItemID,
		modelItem.Kind,
		modelItem.MovementType,
		modelItem.Description,
		modelItem.Amount,
		modelItem.Date,
		modelItem.Note,
		modelItem.Active,
		modelItem.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	saved := mapping.ToDomainItem(modelItem)
	return &saved, nil
}

// FindItemByID retrieves one item row.
func (r *PgxItemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1;`

	modelItem, err := scanItemRow(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}

	found := mapping.ToDomainItem(modelItem)
	return &found, nil
}

// UpdateItem applies a partial update and returns the resulting row.
func (r *PgxItemRepository) UpdateItem(ctx context.Context, itemID string, update models.ItemUpdate) (*domain.Item, error) {
	setClauses := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)
	addClause := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Description != nil {
		addClause("description", *update.Description)
	}
	if update.Amount != nil {
		addClause("amount", *update.Amount)
	}
	if update.Date != nil {
		addClause("date", *update.Date)
	}
	if update.Note != nil {
		addClause("note", *update.Note)
	}
	if update.MovementType != nil {
		addClause("movement_type", *update.MovementType)
	}
	if update.Active != nil {
		addClause("active", *update.Active)
	}
	if len(setClauses) == 0 {
		return r.FindItemByID(ctx, itemID)
	}

	args = append(args, itemID)
	query := fmt.Sprintf(
		"UPDATE items SET %s WHERE item_id = $%d RETURNING %s;",
		strings.Join(setClauses, ", "), len(args), itemColumns,
	)

	modelItem, err := scanItemRow(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update item %s: %w", itemID, err)
	}

	updated := mapping.ToDomainItem(modelItem)
	return &updated, nil
}

// DeleteItem removes an item row.
func (r *PgxItemRepository) DeleteItem(ctx context.Context, itemID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM items WHERE item_id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkItemCompleted flips active to false, guarded so only a row that is
// still outstanding (active true or unset) is flipped. Two racing
// completions cannot both succeed.
func (r *PgxItemRepository) MarkItemCompleted(ctx context.Context, itemID string) error {
	query := `
		UPDATE items SET active = FALSE
		WHERE item_id = $1 AND active IS DISTINCT FROM FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("failed to mark item %s completed: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE item_id = $1);`, itemID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check item %s after guarded update: %w", itemID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrAlreadyCompleted
	}
	return nil
}

// ListItems retrieves items matching the filter in the requested order.
func (r *PgxItemRepository) ListItems(ctx context.Context, filter portsrepo.ListItemsFilter) ([]domain.Item, error) {
	whereClauses := make([]string, 0, 2)
	args := make([]interface{}, 0, 1)
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		whereClauses = append(whereClauses, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.ActiveOnly {
		whereClauses = append(whereClauses, "active = TRUE")
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	switch filter.OrderBy {
	case portsrepo.OrderByCreatedAtDesc:
		query += " ORDER BY created_at DESC"
	default:
		query += " ORDER BY date DESC, created_at DESC"
	}
	query += ";"

	return r.queryItems(ctx, query, args...)
}

// SearchItems retrieves items for the history view, newest date first.
// The description match is a case-insensitive substring.
func (r *PgxItemRepository) SearchItems(ctx context.Context, filter portsrepo.SearchItemsFilter) ([]domain.Item, error) {
	whereClauses := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		whereClauses = append(whereClauses, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.MovementType != nil {
		args = append(args, string(*filter.MovementType))
		whereClauses = append(whereClauses, fmt.Sprintf("movement_type = $%d", len(args)))
	}
	if filter.DescriptionQuery != "" {
		args = append(args, filter.DescriptionQuery)
		whereClauses = append(whereClauses, fmt.Sprintf("description ILIKE '%%' || $%d || '%%'", len(args)))
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC;"

	return r.queryItems(ctx, query, args...)
}

func (r *PgxItemRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]domain.Item, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	modelItems := []models.Item{}
	for rows.Next() {
		modelItem, err := scanItemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		modelItems = append(modelItems, modelItem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}

	return mapping.ToDomainItemSlice(modelItems), nil
}

func scanItemRow(row pgx.Row) (models.Item, error) {
	var m models.Item
	err := row.Scan(
		&m.ItemID,
		&m.Kind,
		&m.MovementType,
		&m.Description,
		&m.Amount,
		&m.Date,
		&m.Note,
		&m.Active,
		&m.CreatedAt,
	)
	return m, err
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pairledger/pair_ledger_app/internal/apperrors"
	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	portsrepo "github.com/pairledger/pair_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pairledger/pair_ledger_app/internal/core/ports/services"
	"github.com/pairledger/pair_ledger_app/internal/dto"
	"github.com/pairledger/pair_ledger_app/internal/middleware"
	"github.com/pairledger/pair_ledger_app/internal/models"
	"github.com/shopspring/decimal"
)

// Settlement description prefixes for realized receivables/payables.
const (
	ReceivablePrefix = "Cobro: "
	PayablePrefix    = "Pago: "
)

// Sub-step names reported by StoreError on partial failures.
const (
	StepItemInsert     = "item_insert"
	StepItemUpdate     = "item_update"
	StepItemDelete     = "item_delete"
	StepMarkCompleted  = "mark_completed"
	StepMovementInsert = "movement_insert"
	StepBalanceUpsert  = "balance_upsert"
)

// ledgerService keeps the running balance equal to the sum of all realized
// effects of posted items. Only movements touch the balance; recurring
// charges and open receivables/payables affect projected totals only.
type ledgerService struct {
	itemRepo   portsrepo.ItemRepositoryFacade
	balanceSvc portssvc.BalanceSvcFacade
}

// NewLedgerService creates the balance ledger engine.
func NewLedgerService(itemRepo portsrepo.ItemRepositoryFacade, balanceSvc portssvc.BalanceSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{itemRepo: itemRepo, balanceSvc: balanceSvc}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// movementDelta applies the sign rule: +amount for income, -amount for
// expense. A movement with no recorded type is treated as an expense, the
// conservative reading for legacy rows.
func movementDelta(movementType *domain.MovementType, amount decimal.Decimal) decimal.Decimal {
	if movementType != nil && *movementType == domain.Income {
		return amount
	}
	return amount.Neg()
}

// CreateItem validates and inserts a new ledger item. Movements additionally
// apply their sign-rule delta to the balance; the item insert must succeed
// first, and a failed balance upsert afterwards is reported as a partial
// failure (item exists, balance stale) together with the persisted item.
func (s *ledgerService) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*domain.Item, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kind := domain.ItemKind(req.Kind)
	switch kind {
	case domain.KindMovement, domain.KindRecurring, domain.KindReceivable, domain.KindPayable:
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be formatted as %s", apperrors.ErrValidation, dto.DateLayout)
	}

	// Normalize kind-dependent fields so illegal combinations never reach
	// the store: movementType only on movements, active only on the rest.
	var movementType *domain.MovementType
	var active *bool
	if kind == domain.KindMovement {
		if req.MovementType == nil {
			return nil, fmt.Errorf("%w: movementType is required for kind movement", apperrors.ErrValidation)
		}
		mt := domain.MovementType(*req.MovementType)
		if mt != domain.Income && mt != domain.Expense {
			return nil, fmt.Errorf("%w: unknown movementType %q", apperrors.ErrValidation, *req.MovementType)
		}
		movementType = &mt
	} else {
		active = req.Active
		if kind == domain.KindRecurring && active == nil {
			t := true
			active = &t
		}
	}

	item := domain.Item{
		Kind:         kind,
		MovementType: movementType,
		Description:  req.Description,
		Amount:       req.Amount,
		Date:         date,
		Note:         req.Note,
		Active:       active,
	}

	saved, err := s.itemRepo.SaveItem(ctx, item)
	if err != nil {
		logger.Error("Failed to insert item", slog.String("error", err.Error()))
		return nil, apperrors.NewStoreError("CreateItem", StepItemInsert, nil, err)
	}

	if saved.IsMovement() {
		if err := s.balanceSvc.ApplyDelta(ctx, saved.BalanceDelta()); err != nil {
			logger.Error("Item inserted but balance update failed",
				slog.String("item_id", saved.ItemID), slog.String("error", err.Error()))
			return saved, apperrors.NewStoreError("CreateItem", StepBalanceUpsert, []string{StepItemInsert}, err)
		}
	}

	logger.Info("Item created", slog.String("item_id", saved.ItemID), slog.String("kind", string(saved.Kind)))
	return saved, nil
}

// EditItem applies a partial update. For movements the balance is adjusted
// by the difference between the new and old sign-rule deltas, computed from
// the stored row before it is overwritten. Edits to fields that are not
// meaningful for the item's kind are ignored, and an edit that changes
// nothing returns the item without touching the store.
func (s *ledgerService) EditItem(ctx context.Context, itemID string, req dto.UpdateItemRequest) (*domain.Item, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.itemRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find item for edit", slog.String("item_id", itemID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	update := models.ItemUpdate{}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
		}
		update.Description = req.Description
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		update.Amount = req.Amount
	}
	if req.Date != nil {
		date, err := time.Parse(dto.DateLayout, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be formatted as %s", apperrors.ErrValidation, dto.DateLayout)
		}
		update.Date = &date
	}
	if req.Note != nil {
		update.Note = req.Note
	}
	if req.MovementType != nil && item.IsMovement() {
		mt := domain.MovementType(*req.MovementType)
		if mt != domain.Income && mt != domain.Expense {
			return nil, fmt.Errorf("%w: unknown movementType %q", apperrors.ErrValidation, *req.MovementType)
		}
		update.MovementType = req.MovementType
	}
	switch item.Kind {
	case domain.KindRecurring, domain.KindReceivable, domain.KindPayable:
		update.Active = req.Active
	}

	if update.IsEmpty() {
		logger.Debug("No effective changes for item edit", slog.String("item_id", itemID))
		return item, nil
	}

	balanceAdjusted := false
	if item.IsMovement() {
		// Differential adjustment: computed from the stored row before it
		// is overwritten, never a recomputation from scratch.
		oldDelta := movementDelta(item.MovementType, item.Amount)
		newAmount := item.Amount
		if update.Amount != nil {
			newAmount = *update.Amount
		}
		newType := item.MovementType
		if update.MovementType != nil {
			mt := domain.MovementType(*update.MovementType)
			newType = &mt
		}
		diff := movementDelta(newType, newAmount).Sub(oldDelta)
		if !diff.IsZero() {
			if err := s.balanceSvc.ApplyDelta(ctx, diff); err != nil {
				logger.Error("Failed to adjust balance for item edit", slog.String("item_id", itemID), slog.String("error", err.Error()))
				return nil, apperrors.NewStoreError("EditItem", StepBalanceUpsert, nil, err)
			}
			balanceAdjusted = true
		}
	}

	updated, err := s.itemRepo.UpdateItem(ctx, itemID, update)
	if err != nil {
		logger.Error("Failed to update item", slog.String("item_id", itemID), slog.String("error", err.Error()))
		var completed []string
		if balanceAdjusted {
			completed = []string{StepBalanceUpsert}
		}
		return nil, apperrors.NewStoreError("EditItem", StepItemUpdate, completed, err)
	}

	logger.Info("Item updated", slog.String("item_id", itemID))
	return updated, nil
}

// DeleteItem removes an item. Deleting a movement first undoes its realized
// balance effect (the inverse of its original delta). Deleting a recurring,
// receivable or payable item never touches the balance: open instances had
// no realized effect, and settled ones are tracked by the separate
// settlement movement, which stays.
func (s *ledgerService) DeleteItem(ctx context.Context, itemID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.itemRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find item for delete", slog.String("item_id", itemID), slog.String("error", err.Error()))
		}
		return err
	}

	var completed []string
	if item.IsMovement() {
		if err := s.balanceSvc.ApplyDelta(ctx, item.BalanceDelta().Neg()); err != nil {
			logger.Error("Failed to reverse balance effect before delete", slog.String("item_id", itemID), slog.String("error", err.Error()))
			return apperrors.NewStoreError("DeleteItem", StepBalanceUpsert, nil, err)
		}
		completed = []string{StepBalanceUpsert}
	}

	if err := s.itemRepo.DeleteItem(ctx, itemID); err != nil {
		logger.Error("Failed to delete item", slog.String("item_id", itemID), slog.String("error", err.Error()))
		return apperrors.NewStoreError("DeleteItem", StepItemDelete, completed, err)
	}

	logger.Info("Item deleted", slog.String("item_id", itemID), slog.String("kind", string(item.Kind)))
	return nil
}

// CompleteItem realizes an outstanding receivable or payable: the item is
// deactivated, a settlement movement is inserted, and the balance is
// adjusted, in that order. A failure part-way through reports the sub-step
// reached instead of rolling back.
func (s *ledgerService) CompleteItem(ctx context.Context, itemID string) (*domain.Completion, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.itemRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find item for completion", slog.String("item_id", itemID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	if item.Kind != domain.KindReceivable && item.Kind != domain.KindPayable {
		return nil, fmt.Errorf("%w: only receivable or payable can be completed, got %q", apperrors.ErrInvalidKind, item.Kind)
	}
	if !item.IsOutstanding() {
		return nil, apperrors.ErrAlreadyCompleted
	}

	// Step 1: guarded flag flip. The repo only flips rows that are still
	// outstanding, so a concurrent completion loses cleanly here.
	if err := s.itemRepo.MarkItemCompleted(ctx, itemID); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyCompleted) {
			return nil, err
		}
		logger.Error("Failed to mark item completed", slog.String("item_id", itemID), slog.String("error", err.Error()))
		return nil, apperrors.NewStoreError("CompleteItem", StepMarkCompleted, nil, err)
	}

	// Step 2: insert the realization movement.
	prefix := PayablePrefix
	if item.Kind == domain.KindReceivable {
		prefix = ReceivablePrefix
	}
	movementType := item.SettlementMovementType()
	now := time.Now().UTC()
	movement := domain.Item{
		Kind:         domain.KindMovement,
		MovementType: &movementType,
		Description:  prefix + item.Description,
		Amount:       item.Amount,
		Date:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	savedMovement, err := s.itemRepo.SaveItem(ctx, movement)
	if err != nil {
		logger.Error("Item marked completed but settlement movement insert failed",
			slog.String("item_id", itemID), slog.String("error", err.Error()))
		return nil, apperrors.NewStoreError("CompleteItem", StepMovementInsert, []string{StepMarkCompleted}, err)
	}

	// Step 3: realize the amount on the balance.
	if err := s.balanceSvc.ApplyDelta(ctx, item.SettlementDelta()); err != nil {
		logger.Error("Item and movement written but balance update failed",
			slog.String("item_id", itemID), slog.String("error", err.Error()))
		return nil, apperrors.NewStoreError("CompleteItem", StepBalanceUpsert, []string{StepMarkCompleted, StepMovementInsert}, err)
	}

	logger.Info("Item completed", slog.String("item_id", itemID), slog.String("movement_id", savedMovement.ItemID))

	inactive := false
	item.Active = &inactive
	return &domain.Completion{Item: *item, Movement: *savedMovement}, nil
}

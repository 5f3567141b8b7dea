package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pairledger/pair_ledger_app/internal/apperrors"
	portssvc "github.com/pairledger/pair_ledger_app/internal/core/ports/services"
	"github.com/pairledger/pair_ledger_app/internal/dto"
	"github.com/pairledger/pair_ledger_app/internal/middleware"
)

// itemHandler handles HTTP requests for ledger items.
type itemHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newItemHandler creates a new itemHandler.
func newItemHandler(ls portssvc.LedgerSvcFacade) *itemHandler {
	return &itemHandler{
		ledgerService: ls,
	}
}

// RegisterItemRoutes registers routes related to ledger items.
func RegisterItemRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newItemHandler(ledgerService)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.PATCH("/:id", h.editItem)
		items.DELETE("/:id", h.deleteItem)
		items.POST("/:id/complete", h.completeItem)
	}
}

// createItem godoc
// @Summary Create a ledger item
// @Description Creates a movement, recurring expense, receivable or payable. Movements adjust the running balance.
// @Tags items
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Item stored but balance update failed"
// @Security BearerAuth
// @Router /items [post]
func (h *itemHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		logger = logger.With(slog.String("user_id", userID))
	}
	logger.Info("Received request to create item", slog.String("kind", req.Kind))

	createdItem, err := h.ledgerService.CreateItem(c.Request.Context(), req)
	if err != nil {
		var storeErr *apperrors.StoreError
		switch {
		case errors.As(err, &storeErr) && createdItem != nil:
			// The row exists but a later step failed. Report which step so the
			// caller can reconcile instead of blindly retrying.
			logger.Error("Item created but a later step failed",
				slog.String("item_id", createdItem.ItemID),
				slog.String("failed_step", storeErr.Step),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":          "Item stored but balance update failed",
				"failedStep":     storeErr.Step,
				"completedSteps": storeErr.Completed,
				"item":           dto.ToItemResponse(createdItem),
			})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating item", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		}
		return
	}

	logger.Info("Item created successfully", slog.String("item_id", createdItem.ItemID))
	c.JSON(http.StatusCreated, dto.ToItemResponse(createdItem))
}

// editItem godoc
// @Summary Edit a ledger item
// @Description Applies a partial update. Amount or type changes on movements adjust the running balance by the difference.
// @Tags items
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   item body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]interface{} "Balance adjusted but row update failed"
// @Security BearerAuth
// @Router /items/{id} [patch]
func (h *itemHandler) editItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("item_id", itemID))
	logger.Info("Received request to edit item")

	updatedItem, err := h.ledgerService.EditItem(c.Request.Context(), itemID, req)
	if err != nil {
		var storeErr *apperrors.StoreError
		switch {
		case errors.As(err, &storeErr):
			logger.Error("Edit left the ledger partially updated",
				slog.String("failed_step", storeErr.Step),
				slog.String("error", err.Error()))
			resp := gin.H{
				"error":          "Item edit failed partway",
				"failedStep":     storeErr.Step,
				"completedSteps": storeErr.Completed,
			}
			if updatedItem != nil {
				resp["item"] = dto.ToItemResponse(updatedItem)
			}
			c.JSON(http.StatusInternalServerError, resp)
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Item not found for edit")
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error editing item", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to edit item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit item"})
		}
		return
	}

	logger.Info("Item edited successfully")
	c.JSON(http.StatusOK, dto.ToItemResponse(updatedItem))
}

// deleteItem godoc
// @Summary Delete a ledger item
// @Description Removes an item. Deleting a movement reverses its effect on the running balance.
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 204 "Item deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]interface{} "Balance reversed but row delete failed"
// @Security BearerAuth
// @Router /items/{id} [delete]
func (h *itemHandler) deleteItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	logger = logger.With(slog.String("item_id", itemID))
	logger.Info("Received request to delete item")

	if err := h.ledgerService.DeleteItem(c.Request.Context(), itemID); err != nil {
		var storeErr *apperrors.StoreError
		switch {
		case errors.As(err, &storeErr):
			logger.Error("Delete left the ledger partially updated",
				slog.String("failed_step", storeErr.Step),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":          "Item delete failed partway",
				"failedStep":     storeErr.Step,
				"completedSteps": storeErr.Completed,
			})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Item not found for delete")
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		default:
			logger.Error("Failed to delete item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		}
		return
	}

	logger.Info("Item deleted successfully")
	c.Status(http.StatusNoContent)
}

// completeItem godoc
// @Summary Complete a receivable or payable
// @Description Marks the item settled and records the resulting movement dated today. Receivables add to the balance, payables subtract.
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 200 {object} dto.CompleteItemResponse
// @Failure 400 {object} map[string]string "Item kind cannot be completed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Item already completed"
// @Failure 500 {object} map[string]interface{} "Completion failed partway"
// @Security BearerAuth
// @Router /items/{id}/complete [post]
func (h *itemHandler) completeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	logger = logger.With(slog.String("item_id", itemID))
	logger.Info("Received request to complete item")

	completion, err := h.ledgerService.CompleteItem(c.Request.Context(), itemID)
	if err != nil {
		var storeErr *apperrors.StoreError
		switch {
		case errors.As(err, &storeErr):
			logger.Error("Completion failed partway",
				slog.String("failed_step", storeErr.Step),
				slog.String("error", err.Error()))
			resp := gin.H{
				"error":          "Completion failed partway",
				"failedStep":     storeErr.Step,
				"completedSteps": storeErr.Completed,
			}
			if completion != nil {
				resp["item"] = dto.ToItemResponse(&completion.Item)
			}
			c.JSON(http.StatusInternalServerError, resp)
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Item not found for completion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, apperrors.ErrAlreadyCompleted):
			logger.Warn("Item already completed")
			c.JSON(http.StatusConflict, gin.H{"error": "Item already completed"})
		case errors.Is(err, apperrors.ErrInvalidKind):
			logger.Warn("Item kind cannot be completed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to complete item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete item"})
		}
		return
	}

	logger.Info("Item completed successfully", slog.String("movement_id", completion.Movement.ItemID))
	c.JSON(http.StatusOK, dto.ToCompleteItemResponse(completion))
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pairledger/pair_ledger_app/internal/core/ports/services"
	"github.com/pairledger/pair_ledger_app/internal/dto"
	"github.com/pairledger/pair_ledger_app/internal/middleware"
)

// balanceHandler handles HTTP requests for the running balance.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{
		balanceService: bs,
	}
}

// registerBalanceRoutes registers the balance routes.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balance := rg.Group("/balance")
	{
		balance.GET("", h.getBalance)
		balance.PUT("", h.setBalance)
	}
}

// getBalance godoc
// @Summary Get the running balance
// @Description Returns the current balance and when it was last written. Reads as zero before the first write.
// @Tags balance
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to read balance"
// @Security BearerAuth
// @Router /balance [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.balanceService.GetBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(state))
}

// setBalance godoc
// @Summary Set the running balance
// @Description Overwrites the balance with the given value. This is a direct write, not a delta.
// @Tags balance
// @Accept  json
// @Produce  json
// @Param   balance body dto.SetBalanceRequest true "New balance value"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to write balance"
// @Security BearerAuth
// @Router /balance [put]
func (h *balanceHandler) setBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	state, err := h.balanceService.SetBalance(c.Request.Context(), *req.Balance)
	if err != nil {
		logger.Error("Failed to write balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write balance"})
		return
	}

	logger.Info("Balance overwritten", slog.String("balance", state.Balance.String()))
	c.JSON(http.StatusOK, dto.ToBalanceResponse(state))
}

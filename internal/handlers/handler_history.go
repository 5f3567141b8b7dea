package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pairledger/pair_ledger_app/internal/core/ports/services"
	"github.com/pairledger/pair_ledger_app/internal/dto"
	"github.com/pairledger/pair_ledger_app/internal/middleware"
)

// historyHandler handles HTTP requests for the history view.
type historyHandler struct {
	historyService portssvc.HistorySvcFacade
}

func newHistoryHandler(hs portssvc.HistorySvcFacade) *historyHandler {
	return &historyHandler{
		historyService: hs,
	}
}

// registerHistoryRoutes registers the history route.
func registerHistoryRoutes(rg *gin.RouterGroup, historyService portssvc.HistorySvcFacade) {
	h := newHistoryHandler(historyService)
	rg.GET("/history", h.listHistory)
}

// listHistory godoc
// @Summary List ledger history
// @Description Returns items filtered by kind and description substring, newest date first. Kind accepts the stored kinds plus the virtual filters income and expense; anything else means all.
// @Tags history
// @Produce  json
// @Param   kind query string false "Kind filter (movement, recurring, receivable, payable, income, expense, all)"
// @Param   q query string false "Case-insensitive description substring"
// @Success 200 {object} dto.HistoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list history"
// @Security BearerAuth
// @Router /history [get]
func (h *historyHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kindFilter := c.Query("kind")
	query := c.Query("q")

	items, err := h.historyService.ListHistory(c.Request.Context(), kindFilter, query)
	if err != nil {
		logger.Error("Failed to list history",
			slog.String("kind", kindFilter),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history"})
		return
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{Items: dto.ToItemResponses(items)})
}

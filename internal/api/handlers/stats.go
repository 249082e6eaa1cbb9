package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smsledger/sms-expense-backend/internal/api/dto"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/storage"
)

// StatsHandler serves aggregate statistics.
type StatsHandler struct {
	repo storage.Repository
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(repo storage.Repository) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalCount:  stats.TotalCount,
		DebitCount:  stats.DebitCount,
		CreditCount: stats.CreditCount,
		DebitTotal:  stats.DebitTotal.StringFixed(2),
		CreditTotal: stats.CreditTotal.StringFixed(2),
		ByCategory:  stats.ByCategory,
	})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-dinner-planner/internal/metrics"
)

// MetricsHandler exposes the per-day generation usage totals.
type MetricsHandler struct {
	store *metrics.Store
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(store *metrics.Store) *MetricsHandler {
	return &MetricsHandler{store: store}
}

// DailyUsage handles GET /usage?days=N (default 7, capped at 90).
func (h *MetricsHandler) DailyUsage(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			message(c, http.StatusBadRequest, "Ungültiger Zeitraum")
			return
		}
		days = n
	}
	if days > 90 {
		days = 90
	}

	usage, err := h.store.GetDailyUsage(c.Request.Context(), days)
	if err != nil {
		zap.L().Error("failed to load daily usage", zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden der Nutzungsstatistik")
		return
	}
	if usage == nil {
		usage = []metrics.DailyUsage{}
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

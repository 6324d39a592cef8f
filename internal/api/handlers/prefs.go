package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-dinner-planner/internal/api/middleware"
	"weekly-dinner-planner/internal/prefs"
)

// PrefsHandler serves the per-user preference document.
type PrefsHandler struct {
	repo *prefs.Repository
}

// NewPrefsHandler creates a new PrefsHandler.
func NewPrefsHandler(repo *prefs.Repository) *PrefsHandler {
	return &PrefsHandler{repo: repo}
}

// Get handles GET /preferences. First access creates the document with
// defaults.
func (h *PrefsHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	p, err := h.repo.Load(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to load preferences", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden der Benutzereinstellungen")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update handles PUT /preferences with all-or-nothing semantics.
func (h *PrefsHandler) Update(c *gin.Context) {
	var p prefs.Preferences
	if err := c.ShouldBindJSON(&p); err != nil {
		message(c, http.StatusBadRequest, "Ungültige Einstellungen")
		return
	}

	userID := middleware.UserID(c)
	if err := h.repo.Update(c.Request.Context(), userID, p); err != nil {
		zap.L().Error("failed to update preferences", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Deine Einstellungen konnten nicht gespeichert werden")
		return
	}
	c.JSON(http.StatusOK, prefs.Normalize(p))
}

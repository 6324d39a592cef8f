package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-dinner-planner/internal/api/middleware"
	"weekly-dinner-planner/internal/llm"
	"weekly-dinner-planner/internal/pantry"
)

// PantryHandler serves the pantry document and pantry-based recipe
// suggestions.
type PantryHandler struct {
	repo    *pantry.Repository
	textGen llm.TextGenerator
}

// NewPantryHandler creates a new PantryHandler.
func NewPantryHandler(repo *pantry.Repository, textGen llm.TextGenerator) *PantryHandler {
	return &PantryHandler{repo: repo, textGen: textGen}
}

// Get handles GET /pantry.
func (h *PantryHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	p, err := h.repo.Load(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to load pantry", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden des Vorratsschranks")
		return
	}
	c.JSON(http.StatusOK, p)
}

type pantryRequest struct {
	Items []pantry.Item `json:"ingredients"`
}

// Update handles PUT /pantry, overwriting the whole document.
func (h *PantryHandler) Update(c *gin.Context) {
	var req pantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Ungültiger Vorratsschrank")
		return
	}

	userID := middleware.UserID(c)
	if err := h.repo.Update(c.Request.Context(), userID, req.Items); err != nil {
		zap.L().Error("failed to update pantry", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Der Vorratsschrank konnte nicht gespeichert werden")
		return
	}

	p, err := h.repo.Load(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to reload pantry", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden des Vorratsschranks")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Suggest handles POST /pantry/suggestions: asks the generation service for
// three recipes built from the stored pantry contents.
func (h *PantryHandler) Suggest(c *gin.Context) {
	userID := middleware.UserID(c)
	p, err := h.repo.Load(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to load pantry for suggestions", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden des Vorratsschranks")
		return
	}
	if len(p.Items) == 0 {
		message(c, http.StatusBadRequest, "Dein Vorratsschrank ist leer. Füge zuerst Zutaten hinzu.")
		return
	}

	resp, err := h.textGen.GenerateContent(c.Request.Context(), pantry.SuggestionPrompt(p.Items))
	if err != nil {
		zap.L().Error("pantry suggestion generation failed", zap.String("user_id", userID), zap.Error(err))
		if errors.Is(err, llm.ErrRateLimited) {
			message(c, http.StatusTooManyRequests, "Zu viele Anfragen. Bitte versuche es in ein paar Minuten erneut.")
			return
		}
		message(c, http.StatusBadGateway, "Es konnten keine Rezeptvorschläge erstellt werden. Bitte versuche es erneut.")
		return
	}

	var parsed struct {
		Suggestions []pantry.Suggestion `json:"suggestions"`
	}
	content := strings.TrimSpace(resp.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || len(parsed.Suggestions) == 0 {
		zap.L().Error("malformed pantry suggestion response", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusBadGateway, "Fehler beim Parsen der Antwort. Bitte versuche es erneut.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": parsed.Suggestions})
}

package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-dinner-planner/internal/api/middleware"
	"weekly-dinner-planner/internal/llm"
	"weekly-dinner-planner/internal/mealplan"
	"weekly-dinner-planner/internal/planner"
	"weekly-dinner-planner/internal/prefs"
	"weekly-dinner-planner/internal/storage"
)

// PlanHandler serves plan generation, saved snapshots, history and the
// active-plan side cache.
type PlanHandler struct {
	generator *planner.Service
	prefsRepo *prefs.Repository
	plans     *mealplan.Repository
	history   *mealplan.HistoryRepository
	cache     *storage.PlanCache
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(
	generator *planner.Service,
	prefsRepo *prefs.Repository,
	plans *mealplan.Repository,
	history *mealplan.HistoryRepository,
	cache *storage.PlanCache,
) *PlanHandler {
	return &PlanHandler{
		generator: generator,
		prefsRepo: prefsRepo,
		plans:     plans,
		history:   history,
		cache:     cache,
	}
}

type generateRequest struct {
	PeriodDays int `json:"periodDays"`
}

// Generate handles POST /plans/generate. The route carries the in-flight
// guard, so at most one generation runs per user. On success the new plan
// becomes the cached active plan; on failure the previous one stays.
func (h *PlanHandler) Generate(c *gin.Context) {
	// An empty body means "use the defaults".
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		message(c, http.StatusBadRequest, "Ungültige Anfrage")
		return
	}
	if req.PeriodDays == 0 {
		req.PeriodDays = 7
	}
	if req.PeriodDays != 7 && req.PeriodDays != 14 {
		message(c, http.StatusBadRequest, "Der Planungszeitraum muss 7 oder 14 Tage betragen")
		return
	}

	userID := middleware.UserID(c)
	p, err := h.prefsRepo.Load(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to load preferences for generation", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden der Benutzereinstellungen")
		return
	}

	plan, err := h.generator.Generate(c.Request.Context(), userID, p, req.PeriodDays)
	if err != nil {
		zap.L().Error("meal plan generation failed", zap.String("user_id", userID), zap.Error(err))
		switch {
		case errors.Is(err, llm.ErrRateLimited):
			message(c, http.StatusTooManyRequests, "Zu viele Anfragen. Bitte versuche es in ein paar Minuten erneut.")
		case errors.Is(err, planner.ErrMalformedResponse):
			message(c, http.StatusBadGateway, "Fehler beim Parsen der Antwort. Bitte versuche es erneut.")
		default:
			message(c, http.StatusBadGateway, "Es gab einen Fehler bei der Erstellung deines Essensplans. Bitte versuche es erneut.")
		}
		return
	}

	if err := h.cache.SaveActivePlan(userID, plan); err != nil {
		zap.L().Warn("failed to cache active plan", zap.String("user_id", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"days": plan})
}

type savePlanRequest struct {
	Days mealplan.MealPlan `json:"days" binding:"required"`
}

// Save handles POST /plans: stores the submitted plan together with the
// user's current preferences as a named snapshot.
func (h *PlanHandler) Save(c *gin.Context) {
	var req savePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Days) == 0 {
		message(c, http.StatusBadRequest, "Kein Essensplan vorhanden")
		return
	}

	userID := middleware.UserID(c)
	p, err := h.prefsRepo.Load(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to load preferences for save", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Speichern des Essensplans")
		return
	}

	id, err := h.plans.Save(c.Request.Context(), userID, req.Days, p)
	if err != nil {
		zap.L().Error("failed to save meal plan", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Speichern des Essensplans")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"message": "Essensplan erfolgreich gespeichert!",
	})
}

// List handles GET /plans, newest first.
func (h *PlanHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	plans, err := h.plans.List(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to list meal plans", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden der gespeicherten Pläne")
		return
	}
	if plans == nil {
		plans = []mealplan.SavedPlan{}
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// Get handles GET /plans/:id. The stored plan is returned verbatim, the
// stored preferences merged over the defaults.
func (h *PlanHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	plan, err := h.plans.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		zap.L().Error("failed to load meal plan", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden der gespeicherten Pläne")
		return
	}
	if plan == nil {
		message(c, http.StatusNotFound, "Kein Essensplan gefunden")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// Delete handles DELETE /plans/:id. Unknown ids succeed.
func (h *PlanHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.plans.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		zap.L().Error("failed to delete meal plan", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Löschen des Essensplans")
		return
	}
	c.Status(http.StatusNoContent)
}

// History handles GET /plans/history.
func (h *PlanHandler) History(c *gin.Context) {
	userID := middleware.UserID(c)
	entries, err := h.history.ListRecent(c.Request.Context(), userID, 20)
	if err != nil {
		zap.L().Error("failed to list plan history", zap.String("user_id", userID), zap.Error(err))
		message(c, http.StatusInternalServerError, "Fehler beim Laden der gespeicherten Pläne")
		return
	}
	if entries == nil {
		entries = []mealplan.HistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// GetActive handles GET /active-plan. A missing or corrupt cache entry is an
// empty plan, never an error.
func (h *PlanHandler) GetActive(c *gin.Context) {
	plan, ok := h.cache.LoadActivePlan(middleware.UserID(c))
	if !ok {
		plan = mealplan.MealPlan{}
	}
	c.JSON(http.StatusOK, gin.H{"days": plan})
}

// PutActive handles PUT /active-plan.
func (h *PlanHandler) PutActive(c *gin.Context) {
	var req savePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Ungültiger Essensplan")
		return
	}
	userID := middleware.UserID(c)
	if err := h.cache.SaveActivePlan(userID, req.Days); err != nil {
		zap.L().Warn("failed to cache active plan", zap.String("user_id", userID), zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

// DeleteActive handles DELETE /active-plan.
func (h *PlanHandler) DeleteActive(c *gin.Context) {
	h.cache.ClearActivePlan(middleware.UserID(c))
	c.Status(http.StatusNoContent)
}

// FirstVisit handles GET /first-visit.
func (h *PlanHandler) FirstVisit(c *gin.Context) {
	visited := h.cache.HasVisited(middleware.UserID(c))
	c.JSON(http.StatusOK, gin.H{"firstVisit": !visited})
}

// MarkVisited handles POST /first-visit.
func (h *PlanHandler) MarkVisited(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.cache.MarkVisited(userID); err != nil {
		zap.L().Warn("failed to mark first visit", zap.String("user_id", userID), zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-dinner-planner/internal/export"
	"weekly-dinner-planner/internal/mealplan"
	"weekly-dinner-planner/internal/share"
)

// DeriveHandler serves views computed from a submitted plan: shopping list,
// nutrition summary and share links. The plan always travels in the request
// body, so these endpoints work for generated and shared plans alike.
type DeriveHandler struct{}

// NewDeriveHandler creates a new DeriveHandler.
func NewDeriveHandler() *DeriveHandler {
	return &DeriveHandler{}
}

type planRequest struct {
	Days mealplan.MealPlan `json:"days" binding:"required"`
}

// ShoppingList handles POST /shopping-list.
func (h *DeriveHandler) ShoppingList(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Kein Essensplan vorhanden")
		return
	}
	list := mealplan.BuildShoppingList(req.Days)
	c.JSON(http.StatusOK, gin.H{"categories": list})
}

// ShoppingListPDF handles POST /shopping-list/pdf and streams the rendered
// document.
func (h *DeriveHandler) ShoppingListPDF(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Kein Essensplan vorhanden")
		return
	}

	list := mealplan.BuildShoppingList(req.Days)
	data, err := export.ShoppingListPDF(list)
	if err != nil {
		zap.L().Error("failed to render shopping list PDF", zap.Error(err))
		message(c, http.StatusInternalServerError, "Die Einkaufsliste konnte nicht exportiert werden")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="einkaufsliste.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// Nutrition handles POST /nutrition.
func (h *DeriveHandler) Nutrition(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Kein Essensplan vorhanden")
		return
	}
	c.JSON(http.StatusOK, mealplan.SummarizeNutrition(req.Days))
}

// Share handles POST /share and returns the stateless share token.
func (h *DeriveHandler) Share(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Kein Essensplan vorhanden")
		return
	}

	token, err := share.Encode(req.Days)
	if err != nil {
		zap.L().Error("failed to encode share token", zap.Error(err))
		message(c, http.StatusInternalServerError, "Der Essensplan konnte nicht geteilt werden")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Shared handles GET /shared/:token. The endpoint is public: the token itself
// carries the whole plan.
func (h *DeriveHandler) Shared(c *gin.Context) {
	days, err := share.Decode(c.Param("token"))
	if err != nil {
		message(c, http.StatusBadRequest, "Dieser geteilte Essensplan ist ungültig")
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

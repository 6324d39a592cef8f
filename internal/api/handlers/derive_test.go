package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"weekly-dinner-planner/internal/mealplan"
	"weekly-dinner-planner/internal/share"
)

func deriveRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDeriveHandler()
	r := gin.New()
	r.POST("/shopping-list", h.ShoppingList)
	r.POST("/shopping-list/pdf", h.ShoppingListPDF)
	r.POST("/nutrition", h.Nutrition)
	r.POST("/share", h.Share)
	r.GET("/shared/:token", h.Shared)
	return r
}

func postPlan(t *testing.T, r *gin.Engine, path string, plan mealplan.MealPlan) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(gin.H{"days": plan})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func samplePlan() mealplan.MealPlan {
	return mealplan.MealPlan{
		{Date: "2026-08-20", Dinner: &mealplan.Meal{
			Name: "Tomatensuppe",
			Ingredients: []mealplan.Ingredient{
				{Name: "Tomate", Amount: 6, Unit: "Stück"},
				{Name: "Sahne", Amount: 100, Unit: "ml"},
			},
			Calories: 400, Protein: 10, Carbs: 30, Fat: 15,
		}},
	}
}

func TestShoppingListEndpoint(t *testing.T) {
	w := postPlan(t, deriveRouter(), "/shopping-list", samplePlan())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Categories []mealplan.CategoryItems `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Categories) != 2 {
		t.Errorf("expected 2 categories, got %+v", resp.Categories)
	}
}

func TestShoppingListEndpointRejectsMissingPlan(t *testing.T) {
	r := deriveRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/shopping-list", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestShoppingListPDFEndpoint(t *testing.T) {
	w := postPlan(t, deriveRouter(), "/shopping-list/pdf", samplePlan())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("response body is not a PDF")
	}
}

func TestNutritionEndpoint(t *testing.T) {
	w := postPlan(t, deriveRouter(), "/nutrition", samplePlan())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var summary mealplan.NutritionSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if summary.TotalCalories != 400 {
		t.Errorf("totalCalories = %d, want 400", summary.TotalCalories)
	}
}

func TestShareAndSharedRoundTrip(t *testing.T) {
	r := deriveRouter()

	w := postPlan(t, r, "/share", samplePlan())
	if w.Code != http.StatusOK {
		t.Fatalf("share status = %d, want 200", w.Code)
	}
	var shareResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &shareResp); err != nil {
		t.Fatalf("failed to decode share response: %v", err)
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/shared/"+shareResp.Token, nil)
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("shared status = %d, want 200", w2.Code)
	}

	var sharedResp struct {
		Days []share.Day `json:"days"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &sharedResp); err != nil {
		t.Fatalf("failed to decode shared response: %v", err)
	}
	if len(sharedResp.Days) != 1 || sharedResp.Days[0].Dinner.Name != "Tomatensuppe" {
		t.Errorf("shared plan did not round-trip: %+v", sharedResp.Days)
	}
}

func TestSharedRejectsCorruptToken(t *testing.T) {
	r := deriveRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/shared/kein-gueltiger-token!", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

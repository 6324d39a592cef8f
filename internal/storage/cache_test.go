package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"weekly-dinner-planner/internal/mealplan"
)

func newTestCache(t *testing.T) *PlanCache {
	t.Helper()
	cache, err := NewPlanCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewPlanCache failed: %v", err)
	}
	return cache
}

func TestActivePlanRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	plan := mealplan.MealPlan{
		{Date: "2026-08-20", Dinner: &mealplan.Meal{Name: "Flammkuchen"}},
	}

	if err := cache.SaveActivePlan("user-1", plan); err != nil {
		t.Fatalf("SaveActivePlan failed: %v", err)
	}

	got, ok := cache.LoadActivePlan("user-1")
	if !ok {
		t.Fatal("LoadActivePlan returned ok=false for saved plan")
	}
	if len(got) != 1 || got[0].Dinner.Name != "Flammkuchen" {
		t.Errorf("loaded plan = %+v", got)
	}
}

func TestLoadActivePlanMissing(t *testing.T) {
	cache := newTestCache(t)
	if _, ok := cache.LoadActivePlan("nobody"); ok {
		t.Error("expected ok=false for missing entry")
	}
}

func TestLoadActivePlanDiscardsCorruptEntry(t *testing.T) {
	cache := newTestCache(t)
	path := cache.planPath("user-1")
	if err := os.WriteFile(path, []byte("{nicht json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt entry: %v", err)
	}

	if _, ok := cache.LoadActivePlan("user-1"); ok {
		t.Error("expected ok=false for corrupt entry")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestClearActivePlan(t *testing.T) {
	cache := newTestCache(t)
	if err := cache.SaveActivePlan("user-1", mealplan.MealPlan{}); err != nil {
		t.Fatalf("SaveActivePlan failed: %v", err)
	}

	cache.ClearActivePlan("user-1")
	if _, ok := cache.LoadActivePlan("user-1"); ok {
		t.Error("plan still present after clear")
	}
	// Clearing again must not panic or error.
	cache.ClearActivePlan("user-1")
}

func TestVisitedFlag(t *testing.T) {
	cache := newTestCache(t)
	if cache.HasVisited("user-1") {
		t.Error("new user reported as visited")
	}
	if err := cache.MarkVisited("user-1"); err != nil {
		t.Fatalf("MarkVisited failed: %v", err)
	}
	if !cache.HasVisited("user-1") {
		t.Error("visited flag not persisted")
	}
}

func TestSanitizeKeepsPathsInsideBase(t *testing.T) {
	cache := newTestCache(t)
	path := cache.planPath("../evil/user")
	rel, err := filepath.Rel(cache.basePath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		t.Errorf("sanitized path escapes base: %s", path)
	}
}

package mealplan_test

import (
	"context"
	"path/filepath"
	"testing"

	"weekly-dinner-planner/internal/database"
	"weekly-dinner-planner/internal/mealplan"
	"weekly-dinner-planner/internal/prefs"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testPlan() mealplan.MealPlan {
	return mealplan.MealPlan{
		{Date: "2026-08-20", Dinner: &mealplan.Meal{
			Name:        "Gemüsecurry",
			Ingredients: []mealplan.Ingredient{{Name: "Karotte", Amount: 3, Unit: "Stück"}},
		}},
	}
}

func TestRepositorySaveListGetDelete(t *testing.T) {
	db := testDB(t)
	repo := mealplan.NewRepository(db.SQL)
	ctx := context.Background()

	p := prefs.Default()
	p.Servings = 2

	id, err := repo.Save(ctx, "user-1", testPlan(), p)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty id")
	}

	plans, err := repo.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(plans))
	}
	if plans[0].ID != id {
		t.Errorf("listed id = %q, want %q", plans[0].ID, id)
	}
	if plans[0].Name == "" {
		t.Error("saved plan has no name")
	}

	got, err := repo.Get(ctx, "user-1", id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for existing plan")
	}
	if len(got.Plan) != 1 || got.Plan[0].Dinner.Name != "Gemüsecurry" {
		t.Errorf("stored plan did not round-trip: %+v", got.Plan)
	}
	if got.Preferences.Servings != 2 {
		t.Errorf("stored servings = %d, want 2", got.Preferences.Servings)
	}
	// Fields absent from the stored document come back as defaults.
	if got.Preferences.Difficulty != "medium" {
		t.Errorf("difficulty = %q, want medium", got.Preferences.Difficulty)
	}

	if err := repo.Delete(ctx, "user-1", id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got, err := repo.Get(ctx, "user-1", id); err != nil || got != nil {
		t.Errorf("Get after delete = (%+v, %v), want (nil, nil)", got, err)
	}
}

func TestRepositoryGetUnknownID(t *testing.T) {
	db := testDB(t)
	repo := mealplan.NewRepository(db.SQL)

	got, err := repo.Get(context.Background(), "user-1", "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}
}

func TestRepositoryDeleteUnknownIDIsNoop(t *testing.T) {
	db := testDB(t)
	repo := mealplan.NewRepository(db.SQL)

	if err := repo.Delete(context.Background(), "user-1", "missing"); err != nil {
		t.Errorf("Delete of unknown id failed: %v", err)
	}
}

func TestRepositoryScopesByUser(t *testing.T) {
	db := testDB(t)
	repo := mealplan.NewRepository(db.SQL)
	ctx := context.Background()

	id, err := repo.Save(ctx, "user-1", testPlan(), prefs.Default())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if got, err := repo.Get(ctx, "user-2", id); err != nil || got != nil {
		t.Errorf("cross-user Get = (%+v, %v), want (nil, nil)", got, err)
	}
	plans, err := repo.List(ctx, "user-2")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("cross-user List returned %d plans", len(plans))
	}
}

func TestHistoryRepositorySaveAndListRecent(t *testing.T) {
	db := testDB(t)
	repo := mealplan.NewHistoryRepository(db.SQL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Save(ctx, "user-1", testPlan(), prefs.Default()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := repo.ListRecent(ctx, "user-1", 2)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID < entries[1].ID {
		t.Errorf("entries not newest first: %d before %d", entries[0].ID, entries[1].ID)
	}
}

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"weekly-dinner-planner/internal/auth"
	"weekly-dinner-planner/internal/config"
	"weekly-dinner-planner/internal/database"
	"weekly-dinner-planner/internal/llm"
	"weekly-dinner-planner/internal/mealplan"
	"weekly-dinner-planner/internal/metrics"
	"weekly-dinner-planner/internal/pantry"
	"weekly-dinner-planner/internal/planner"
	"weekly-dinner-planner/internal/prefs"
	"weekly-dinner-planner/internal/reminder"
	"weekly-dinner-planner/internal/storage"
)

type staticTextGenerator struct {
	content string
}

func (s *staticTextGenerator) GenerateContent(context.Context, string) (llm.ContentResponse, error) {
	return llm.ContentResponse{Content: s.content}, nil
}

type testEnv struct {
	router *gin.Engine
	token  string
	store  *metrics.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cache, err := storage.NewPlanCache(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create plan cache: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Debug = true

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.Issue(auth.Identity{UID: "user-1"})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	textGen := &staticTextGenerator{content: `{"days": []}`}
	historyRepo := mealplan.NewHistoryRepository(db.SQL)
	store := metrics.NewStore(db.SQL)

	router := NewRouter(Deps{
		Config:    cfg,
		DB:        db.SQL,
		Tokens:    tokens,
		TextGen:   textGen,
		Planner:   planner.NewService(textGen, historyRepo, store),
		Prefs:     prefs.NewRepository(db.SQL),
		Plans:     mealplan.NewRepository(db.SQL),
		History:   historyRepo,
		Pantry:    pantry.NewRepository(db.SQL),
		Reminders: reminder.NewRepository(db.SQL),
		Cache:     cache,
		Metrics:   store,
	})

	return &testEnv{router: router, token: token, store: store}
}

func (e *testEnv) request(method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+e.token)
	req.Header.Set("Content-Type", "application/json")
	e.router.ServeHTTP(w, req)
	return w
}

const savePlanBody = `{"days": [{"date": "2026-08-20", "dinner": {"name": "Ofengemüse"}}]}`

// A double-submitted save must not create two snapshots: while the first save
// is still running, the second request gets a 409.
func TestSaveRejectsConcurrentDuplicate(t *testing.T) {
	env := newTestEnv(t)

	pr, pw := io.Pipe()
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- env.request(http.MethodPost, "/api/v1/plans", pr)
	}()

	// Once this write is consumed, the first request is past the guard and
	// inside the handler reading its body.
	if _, err := pw.Write([]byte(`{"days": [`)); err != nil {
		t.Fatalf("failed to feed first request: %v", err)
	}

	second := env.request(http.MethodPost, "/api/v1/plans", strings.NewReader(savePlanBody))
	if second.Code != http.StatusConflict {
		t.Errorf("concurrent save status = %d, want 409", second.Code)
	}

	rest := `{"date": "2026-08-20", "dinner": {"name": "Ofengemüse"}}]}`
	if _, err := pw.Write([]byte(rest)); err != nil {
		t.Fatalf("failed to finish first request: %v", err)
	}
	pw.Close()

	first := <-done
	if first.Code != http.StatusCreated {
		t.Fatalf("first save status = %d, want 201", first.Code)
	}

	// The slot is released after completion, so the next save goes through.
	third := env.request(http.MethodPost, "/api/v1/plans", strings.NewReader(savePlanBody))
	if third.Code != http.StatusCreated {
		t.Errorf("follow-up save status = %d, want 201", third.Code)
	}

	list := env.request(http.MethodGet, "/api/v1/plans", nil)
	var resp struct {
		Plans []mealplan.SavedPlan `json:"plans"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode plan list: %v", err)
	}
	if len(resp.Plans) != 2 {
		t.Errorf("stored snapshots = %d, want 2 (duplicate was rejected)", len(resp.Plans))
	}
}

func TestGenerateAndSaveUseSeparateSlots(t *testing.T) {
	env := newTestEnv(t)

	pr, pw := io.Pipe()
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- env.request(http.MethodPost, "/api/v1/plans", pr)
	}()
	if _, err := pw.Write([]byte(`{"days": [`)); err != nil {
		t.Fatalf("failed to feed save request: %v", err)
	}

	// A running save must not block generation; the guard is per action.
	gen := env.request(http.MethodPost, "/api/v1/plans/generate", strings.NewReader(`{"periodDays": 7}`))
	if gen.Code != http.StatusOK {
		t.Errorf("generate during save status = %d, want 200", gen.Code)
	}

	if _, err := pw.Write([]byte(`]}`)); err != nil {
		t.Fatalf("failed to finish save request: %v", err)
	}
	pw.Close()
	<-done
}

func TestUsageEndpoint(t *testing.T) {
	env := newTestEnv(t)

	err := env.store.Record(context.Background(), metrics.ExecutionMetric{
		Model:            "test-model",
		PromptTokens:     100,
		CompletionTokens: 300,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	w := env.request(http.MethodGet, "/api/v1/usage?days=7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Usage []metrics.DailyUsage `json:"usage"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Usage) != 1 || resp.Usage[0].TotalExecutions != 1 {
		t.Errorf("usage = %+v, want one day with one execution", resp.Usage)
	}

	bad := env.request(http.MethodGet, "/api/v1/usage?days=zwei", nil)
	if bad.Code != http.StatusBadRequest {
		t.Errorf("invalid days status = %d, want 400", bad.Code)
	}
}

func TestRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", w.Code)
	}
}

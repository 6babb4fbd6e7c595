package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/weekwise/weekwise-api/internal/adapters/http"
	"github.com/weekwise/weekwise-api/internal/adapters/llm"
	memstore "github.com/weekwise/weekwise-api/internal/adapters/storage/memory"
	"github.com/weekwise/weekwise-api/internal/app/analysis"
	"github.com/weekwise/weekwise-api/internal/app/history"
	"github.com/weekwise/weekwise-api/internal/app/planner"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	gen := llm.NewMockGenerator()
	store := memstore.NewAnalysisStore()

	analysisSvc := analysis.NewService(gen)
	plannerSvc := planner.NewService(gen)
	historySvc := history.NewService(store)

	return httpadapter.NewServer(analysisSvc, plannerSvc, historySvc)
}

func postJSON(t *testing.T, srv http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Message string         `json:"message"`
	Meta    struct {
		Version string `json:"version"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON response: %v\nbody=%s", err, w.Body.String())
	}
	return env
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCheckFeasibility(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"daily_tasks": [
			{"day": "Monday", "name": "math"},
			{"day": "Monday", "name": "gym"},
			{"day": "Monday", "name": "essay"},
			{"day": "Monday", "name": "review"}
		],
		"mood": "normal",
		"main_focus_day": "Monday"
	}`

	w := postJSON(t, srv, "/api/ai/check-feasibility", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", w.Body.String())
	}
	if env.Meta.Version != "v1" {
		t.Fatalf("expected meta version v1, got %q", env.Meta.Version)
	}

	checks, ok := env.Data["rule_based_checks"].(map[string]any)
	if !ok {
		t.Fatalf("missing rule_based_checks: %s", w.Body.String())
	}
	if heavy, _ := checks["heavy_days"].([]any); len(heavy) != 1 {
		t.Fatalf("expected 1 heavy day, got %v", checks["heavy_days"])
	}
	// 1 heavy day and average under 6: still feasible.
	if env.Data["feasible"] != true {
		t.Fatalf("expected feasible, got %s", w.Body.String())
	}
}

func TestCheckFeasibility_RequiresTasks(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/ai/check-feasibility", `{"daily_tasks": []}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Success {
		t.Fatal("expected success=false")
	}
}

func TestCheckOverthinking(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/ai/check-overthinking", `{"edit_count": 6, "days_inactive": 0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	if env.Data["triggered"] != true {
		t.Fatalf("expected triggered, got %s", w.Body.String())
	}
	if env.Data["severity"] != "moderate" {
		t.Fatalf("expected moderate severity, got %v", env.Data["severity"])
	}
}

func TestCheckOverthinking_RequiresEditCount(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/ai/check-overthinking", `{"days_inactive": 4}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestGenerateTasks(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/ai/generate-tasks", `{"goal_name": "Learn Go", "goal_category": "Programming"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	tasks, _ := env.Data["tasks"].([]any)
	if len(tasks) == 0 {
		t.Fatalf("expected generated tasks, got %s", w.Body.String())
	}
}

func TestSuggestDowngrade_RequiresFields(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/ai/suggest-downgrade", `{"task_name": "Gym workout"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestWeeklyReflection_RequiresPositiveTotal(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/ai/weekly-reflection", `{"total_tasks": 0, "completed_tasks": 0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHistoryAfterAnalysis(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/api/ai/suggest-downgrade",
		`{"user_id": "student-9", "task_name": "Gym workout", "difficulty": "Hard", "missed_count": 2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ai/history/student-9", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	records, _ := env.Data["records"].([]any)
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %s", rec.Body.String())
	}
	record := records[0].(map[string]any)
	if record["kind"] != "downgrade" {
		t.Fatalf("expected downgrade record, got %v", record["kind"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ai/check-feasibility", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/weekwise/weekwise-api/internal/app/analysis"
	"github.com/weekwise/weekwise-api/internal/app/history"
	"github.com/weekwise/weekwise-api/internal/app/planner"
	"github.com/weekwise/weekwise-api/internal/domain"
	"github.com/weekwise/weekwise-api/internal/observability"
)

const apiVersion = "v1"

type Server struct {
	analysis *analysis.Service
	planner  *planner.Service
	history  *history.Service
}

func NewServer(analysisSvc *analysis.Service, plannerSvc *planner.Service, historySvc *history.Service) http.Handler {
	s := &Server{
		analysis: analysisSvc,
		planner:  plannerSvc,
		history:  historySvc,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	mux.HandleFunc("/api/ai/generate-tasks", postOnly(s.handleGenerateTasks))
	mux.HandleFunc("/api/ai/check-feasibility", postOnly(s.handleCheckFeasibility))
	mux.HandleFunc("/api/ai/suggest-downgrade", postOnly(s.handleSuggestDowngrade))
	mux.HandleFunc("/api/ai/weekly-reflection", postOnly(s.handleWeeklyReflection))
	mux.HandleFunc("/api/ai/check-overthinking", postOnly(s.handleCheckOverthinking))
	mux.HandleFunc("/api/ai/get-insights", postOnly(s.handleGetInsights))

	// /api/ai/history/{userID}
	mux.HandleFunc("/api/ai/history/", s.handleHistory)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type taskDTO struct {
	Day    string `json:"day"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type generateTasksRequest struct {
	GoalName     string `json:"goal_name"`
	GoalCategory string `json:"goal_category,omitempty"`
}

type generateTasksResponse struct {
	GoalName string   `json:"goal_name"`
	Tasks    []string `json:"tasks"`
}

type checkFeasibilityRequest struct {
	UserID       string    `json:"user_id,omitempty"`
	DailyTasks   []taskDTO `json:"daily_tasks"`
	Mood         string    `json:"mood,omitempty"`
	MainFocusDay string    `json:"main_focus_day,omitempty"`
}

type suggestDowngradeRequest struct {
	UserID      string `json:"user_id,omitempty"`
	TaskName    string `json:"task_name"`
	Difficulty  string `json:"difficulty"`
	MissedCount int    `json:"missed_count,omitempty"`
}

type weeklyReflectionRequest struct {
	UserID         string    `json:"user_id,omitempty"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	MissedTasks    int       `json:"missed_tasks"`
	TaskBreakdown  []taskDTO `json:"task_breakdown,omitempty"`
	Mood           string    `json:"mood,omitempty"`
	MainFocusDay   string    `json:"main_focus_day,omitempty"`
}

type checkOverthinkingRequest struct {
	UserID       string `json:"user_id,omitempty"`
	EditCount    *int   `json:"edit_count"`
	DaysInactive int    `json:"days_inactive,omitempty"`
}

type getInsightsRequest struct {
	DailyTasks   []taskDTO `json:"daily_tasks"`
	Mood         string    `json:"mood,omitempty"`
	MainFocusDay string    `json:"main_focus_day,omitempty"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "weekwise-api",
		"time":    time.Now().UTC(),
	})
}

func (s *Server) handleGenerateTasks(w http.ResponseWriter, r *http.Request) {
	var req generateTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.GoalName) == "" {
		badRequest(w, "goal_name is required")
		return
	}

	tasks, err := s.planner.GenerateTasks(r.Context(), req.GoalName, req.GoalCategory)
	if err != nil {
		writeError(w, err, "Failed to generate tasks")
		return
	}

	writeSuccess(w, generateTasksResponse{GoalName: req.GoalName, Tasks: tasks})
}

func (s *Server) handleCheckFeasibility(w http.ResponseWriter, r *http.Request) {
	var req checkFeasibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if len(req.DailyTasks) == 0 {
		badRequest(w, "weekly plan with tasks is required")
		return
	}

	plan := domain.WeeklyPlan{
		Tasks:        toTasks(req.DailyTasks),
		Mood:         domain.Mood(req.Mood),
		MainFocusDay: domain.Weekday(req.MainFocusDay),
	}

	result := s.analysis.CheckFeasibility(r.Context(), plan)

	s.record(r, req.UserID, domain.KindFeasibility,
		fmt.Sprintf("feasible=%t avg=%.1f", result.Feasible, result.RuleBased.AverageLoad),
		result.FallbackMode, result)

	writeSuccess(w, result)
}

func (s *Server) handleSuggestDowngrade(w http.ResponseWriter, r *http.Request) {
	var req suggestDowngradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.TaskName == "" || req.Difficulty == "" {
		badRequest(w, "task_name and difficulty are required")
		return
	}

	missedCount := req.MissedCount
	if missedCount <= 0 {
		missedCount = 2
	}

	result := s.analysis.SuggestDowngrade(r.Context(), req.TaskName, domain.Difficulty(req.Difficulty), missedCount)

	s.record(r, req.UserID, domain.KindDowngrade, result.RuleBased, result.FallbackMode, result)

	writeSuccess(w, result)
}

func (s *Server) handleWeeklyReflection(w http.ResponseWriter, r *http.Request) {
	var req weeklyReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.TotalTasks <= 0 {
		badRequest(w, "total_tasks must be positive")
		return
	}
	if req.CompletedTasks < 0 || req.MissedTasks < 0 {
		badRequest(w, "completed_tasks and missed_tasks must not be negative")
		return
	}

	data := domain.WeekData{
		TotalTasks:     req.TotalTasks,
		CompletedTasks: req.CompletedTasks,
		MissedTasks:    req.MissedTasks,
		TaskBreakdown:  toOutcomes(req.TaskBreakdown),
		Mood:           domain.Mood(req.Mood),
		MainFocusDay:   domain.Weekday(req.MainFocusDay),
	}

	result, err := s.analysis.GenerateReflection(r.Context(), data)
	if err != nil {
		writeError(w, err, "Failed to generate weekly reflection")
		return
	}

	s.record(r, req.UserID, domain.KindReflection,
		fmt.Sprintf("completion rate %d%%", result.Summary.CompletionRate),
		result.FallbackMode, result)

	writeSuccess(w, result)
}

func (s *Server) handleCheckOverthinking(w http.ResponseWriter, r *http.Request) {
	var req checkOverthinkingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.EditCount == nil {
		badRequest(w, "edit_count is required")
		return
	}

	result := s.analysis.CheckOverthinking(r.Context(), *req.EditCount, req.DaysInactive)

	s.record(r, req.UserID, domain.KindOverthinking, string(result.Severity), result.FallbackMode, result)

	writeSuccess(w, result)
}

func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	var req getInsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if len(req.DailyTasks) == 0 {
		badRequest(w, "daily_tasks are required")
		return
	}

	insights, err := s.planner.Insights(r.Context(),
		toTasks(req.DailyTasks),
		domain.Weekday(req.MainFocusDay),
		domain.Mood(req.Mood),
	)
	if err != nil {
		writeError(w, err, "Failed to generate insights")
		return
	}

	writeSuccess(w, map[string]string{"insights": insights})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/api/ai/history/")
	if userID == "" || strings.Contains(userID, "/") {
		http.NotFound(w, r)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := s.history.ListByUser(r.Context(), domain.UserID(userID), limit)
	if err != nil {
		internalError(w, "Failed to load history")
		return
	}

	writeSuccess(w, map[string]any{
		"user_id": userID,
		"records": records,
	})
}

// record saves the analysis trace for a user. Best-effort: failures are
// logged and never affect the response.
func (s *Server) record(r *http.Request, userID string, kind domain.AnalysisKind, summary string, fallback bool, payload any) {
	if userID == "" {
		return
	}
	if err := s.history.Record(r.Context(), domain.UserID(userID), kind, summary, fallback, payload); err != nil {
		observability.LoggerFromContext(r.Context()).Warn("failed to record analysis",
			"kind", kind,
			"error", err,
		)
	}
}

// ─────────────────────────────────────────────
// Mapping helpers
// ─────────────────────────────────────────────

func toTasks(dtos []taskDTO) []domain.Task {
	tasks := make([]domain.Task, 0, len(dtos))
	for _, t := range dtos {
		status := domain.TaskStatus(t.Status)
		if t.Status == "" {
			status = domain.StatusPending
		}
		tasks = append(tasks, domain.Task{
			Day:    domain.Weekday(t.Day),
			Name:   t.Name,
			Status: status,
		})
	}
	return tasks
}

func toOutcomes(dtos []taskDTO) []domain.TaskOutcome {
	outcomes := make([]domain.TaskOutcome, 0, len(dtos))
	for _, t := range dtos {
		outcomes = append(outcomes, domain.TaskOutcome{
			Name:   t.Name,
			Day:    domain.Weekday(t.Day),
			Status: domain.TaskStatus(t.Status),
		})
	}
	return outcomes
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h(w, r)
	}
}

type responseMeta struct {
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version"`
}

type successEnvelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data"`
	Meta    responseMeta `json:"meta"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, successEnvelope{
		Success: true,
		Data:    data,
		Meta: responseMeta{
			GeneratedAt: time.Now().UTC(),
			Version:     apiVersion,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an InputError to 400 and anything else (including
// generation failures the planner could not recover from) to a generic
// 500 with a stable message.
func writeError(w http.ResponseWriter, err error, generic string) {
	var inputErr *domain.InputError
	if errors.As(err, &inputErr) {
		badRequest(w, inputErr.Error())
		return
	}
	internalError(w, generic)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"message": msg,
	})
}

func internalError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"message": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
		"success": false,
		"message": "method not allowed",
	})
}

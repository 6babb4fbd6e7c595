package domain

import (
	"encoding/json"
	"time"
)

// Task is one planned item on a weekly plan. Tasks are created by the
// planning UI; this service only reads them.
type Task struct {
	Day    Weekday    `json:"day"`
	Name   string     `json:"name"`
	Status TaskStatus `json:"status"`
}

// WeeklyPlan is the transient input to a feasibility check. The service
// never mutates or persists it.
type WeeklyPlan struct {
	Tasks        []Task
	Mood         Mood
	MainFocusDay Weekday
}

// DailyLoad is the derived workload for a single day. Load is a fixed
// two points per task; labels follow the load (not the task count).
type DailyLoad struct {
	Day       Weekday   `json:"day"`
	TaskCount int       `json:"task_count"`
	Load      int       `json:"load"`
	Label     LoadLabel `json:"label"`
}

type LoadLabel string

const (
	LoadFree     LoadLabel = "Free"
	LoadLight    LoadLabel = "Light"
	LoadBalanced LoadLabel = "Balanced"
	LoadHeavy    LoadLabel = "Heavy"
)

// TaskOutcome tags a task with how the week actually went, used by the
// weekly reflection.
type TaskOutcome struct {
	Name   string     `json:"name"`
	Day    Weekday    `json:"day"`
	Status TaskStatus `json:"status"`
}

// WeekData is everything the reflection needs about a finished week.
// TotalTasks must be positive; callers validate before invoking the core.
type WeekData struct {
	TotalTasks     int
	CompletedTasks int
	MissedTasks    int
	TaskBreakdown  []TaskOutcome
	Mood           Mood
	MainFocusDay   Weekday
}

// WeekSummary is the computed completion statistics echoed back with a
// reflection. CompletionRate is a whole percentage.
type WeekSummary struct {
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	MissedTasks    int     `json:"missed_tasks"`
	CompletionRate int     `json:"completion_rate"`
	Mood           Mood    `json:"mood"`
	MainFocusDay   Weekday `json:"main_focus_day"`
}

// AnalysisKind names which analysis produced a stored record.
type AnalysisKind string

const (
	KindFeasibility  AnalysisKind = "feasibility"
	KindOverthinking AnalysisKind = "overthinking"
	KindDowngrade    AnalysisKind = "downgrade"
	KindReflection   AnalysisKind = "reflection"
)

// AnalysisRecord is the persisted trace of one analysis run for a user.
// Payload holds the full result as JSON so the history API can return
// it without the store knowing each result shape.
type AnalysisRecord struct {
	ID           RecordID        `json:"id"`
	UserID       UserID          `json:"user_id"`
	Kind         AnalysisKind    `json:"kind"`
	Summary      string          `json:"summary"`
	FallbackMode bool            `json:"fallback_mode"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

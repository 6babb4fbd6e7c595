package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/weekwise/weekwise-api/internal/domain"
	"github.com/weekwise/weekwise-api/internal/observability"
)

const wellBalancedMessage = "Your weekly plan looks well-balanced!"

// RuleBasedChecks is the deterministic part of a feasibility analysis.
type RuleBasedChecks struct {
	TotalTasks     int                `json:"total_tasks"`
	TotalLoad      int                `json:"total_load"`
	AverageLoad    float64            `json:"average_load"`
	HeavyDays      []domain.Weekday   `json:"heavy_days"`
	EmptyDays      []domain.Weekday   `json:"empty_days"`
	DailyBreakdown []domain.DailyLoad `json:"daily_breakdown"`
	HasIssues      bool               `json:"has_issues"`
	Feasible       bool               `json:"feasible"`
	Warnings       []string           `json:"warnings"`
}

// FeasibilityResult is the full answer to "can this week work". The
// rule-based checks are always present; AISuggestions holds the raw
// augmented text when the seam was invoked and succeeded.
type FeasibilityResult struct {
	Feasible      bool            `json:"feasible"`
	RuleBased     RuleBasedChecks `json:"rule_based_checks"`
	AISuggestions string          `json:"ai_suggestions,omitempty"`
	FallbackMode  bool            `json:"fallback_mode"`
	FailureCause  string          `json:"failure_cause,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// CheckFeasibility computes the rule-based checks and, only when they
// surface issues, asks the seam for a richer judgment. A seam failure
// never escapes: the rule-based result comes back flagged as fallback.
func (s *Service) CheckFeasibility(ctx context.Context, plan domain.WeeklyPlan) *FeasibilityResult {
	log := observability.LoggerFromContext(ctx).With(
		"task_count", len(plan.Tasks),
		"mood", plan.Mood,
	)

	checks := RuleBasedChecks{}
	loads := s.ruleBasedChecks(plan, &checks)

	result := &FeasibilityResult{
		Feasible:  checks.Feasible,
		RuleBased: checks,
		Timestamp: s.now(),
	}

	if !checks.HasIssues {
		// No issues, no augmentation call. Cost control: the seam is
		// only bothered when there is something to fix.
		result.AISuggestions = wellBalancedMessage
		return result
	}

	log.Info("feasibility issues detected, requesting augmented analysis",
		"heavy_days", len(checks.HeavyDays),
		"average_load", checks.AverageLoad,
	)

	suggestions, err := s.gen.Generate(ctx, buildFeasibilityPrompt(plan, loads), maxTokensAnalysis)
	if err != nil {
		log.Warn("augmented feasibility analysis failed", "error", err)
		result.FallbackMode = true
		result.FailureCause = err.Error()
		return result
	}

	result.AISuggestions = suggestions
	return result
}

// ruleBasedChecks fills checks from the plan and returns the computed
// daily loads so the prompt builder does not recompute them.
func (s *Service) ruleBasedChecks(plan domain.WeeklyPlan, checks *RuleBasedChecks) []domain.DailyLoad {
	tasksByDay := GroupTasksByDay(plan.Tasks)
	loads := CalculateDailyLoads(tasksByDay)

	heavyDays := []domain.Weekday{}
	emptyDays := []domain.Weekday{}
	totalLoad := 0
	for _, d := range loads {
		totalLoad += d.Load
		if d.Load >= 7 {
			heavyDays = append(heavyDays, d.Day)
		}
		if d.Load == 0 {
			emptyDays = append(emptyDays, d.Day)
		}
	}

	avgLoad := float64(totalLoad) / 7

	checks.TotalTasks = len(plan.Tasks)
	checks.TotalLoad = totalLoad
	checks.AverageLoad = math.Round(avgLoad*10) / 10
	checks.HeavyDays = heavyDays
	checks.EmptyDays = emptyDays
	checks.DailyBreakdown = loads
	// Two distinct knobs: avg > 5 decides whether extra analysis is
	// worth requesting, avg <= 6 decides viability. Both are compared
	// against the unrounded average.
	checks.HasIssues = len(heavyDays) > 0 || avgLoad > 5
	checks.Feasible = avgLoad <= 6 && len(heavyDays) <= 2

	checks.Warnings = []string{}
	if len(heavyDays) > 0 {
		names := make([]string, len(heavyDays))
		for i, d := range heavyDays {
			names[i] = string(d)
		}
		checks.Warnings = append(checks.Warnings,
			fmt.Sprintf("Heavy days detected: %s", strings.Join(names, ", ")))
	}
	if avgLoad > 5 {
		checks.Warnings = append(checks.Warnings, "Overall weekly load is high")
	}
	if plan.Mood == domain.MoodTired || plan.Mood == domain.MoodStressed {
		checks.Warnings = append(checks.Warnings,
			fmt.Sprintf("Mood is %s. Consider reducing workload", plan.Mood))
	}

	return loads
}

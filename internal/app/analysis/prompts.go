package analysis

import (
	"fmt"
	"strings"

	"github.com/weekwise/weekwise-api/internal/domain"
)

// buildFeasibilityPrompt summarizes the week (focus day, mood, per-day
// counts and loads) and asks for a feasibility judgment plus suggestions.
func buildFeasibilityPrompt(plan domain.WeeklyPlan, loads []domain.DailyLoad) string {
	var breakdown strings.Builder
	for _, d := range loads {
		fmt.Fprintf(&breakdown, "%s: %d tasks (Load %d)\n", d.Day, d.TaskCount, d.Load)
	}

	return fmt.Sprintf(`You are a productivity AI analyzing a weekly plan.

Main Focus Day: %s
Mood: %s
Total Tasks: %d

Daily Breakdown:
%s
Provide:
1) Is it feasible?
2) Overloaded days
3) 2-3 improvement suggestions`,
		plan.MainFocusDay, plan.Mood, len(plan.Tasks), breakdown.String())
}

func buildOverthinkingPrompt(editCount int, severity domain.Severity) string {
	tone := "Be gentle but clear"
	if severity == domain.SeveritySevere {
		tone = "Be direct and motivating"
	}

	return fmt.Sprintf(`You are a productivity coach. A student has edited their weekly plan %d times.

This indicates overthinking and planning paralysis.

Write ONE short sentence that:
1. Confirms they planned enough
2. Pushes them to start executing
3. %s

Rules:
- Max 20 words
- Memorable
- Action-focused
- No quotes

Examples:
- You've refined this %d times. Time to DO, not plan.
- Stop tweaking. Start working. Progress > Perfect plans.

Message:`, editCount, tone, editCount)
}

func buildDowngradePrompt(taskName string, difficulty domain.Difficulty, missedCount int) string {
	return fmt.Sprintf(`You are a productivity assistant helping a student who keeps missing tasks.

Original Task: %q
Difficulty: %s
Times Missed: %d

The student needs a lighter, easier alternative so they don't break their habit.

Rules:
- 10–20 minutes max
- Clearly easier than original
- Still makes progress
- 1-2 sentences only

Suggestion:`, taskName, difficulty, missedCount)
}

func buildReflectionPrompt(data domain.WeekData, completionRate int) string {
	var completed, missed []string
	for _, t := range data.TaskBreakdown {
		line := fmt.Sprintf("- %s (%s)", t.Name, t.Day)
		switch t.Status {
		case domain.StatusCompleted:
			completed = append(completed, line)
		case domain.StatusSkipped:
			missed = append(missed, line)
		}
	}

	completedList := strings.Join(completed, "\n")
	if completedList == "" {
		completedList = "None"
	}
	missedList := strings.Join(missed, "\n")
	if missedList == "" {
		missedList = "None"
	}

	return fmt.Sprintf(`You are an AI productivity coach providing a weekly reflection for a student.

Weekly Summary:
Total Tasks: %d
Completed: %d (%d%%)
Missed: %d
Main Focus Day: %s
Mood State: %s

Completed Tasks:
%s

Missed Tasks:
%s

Generate a reflection with these sections:

What Went Well:
- Highlight achievements
- Recognize patterns of success

What Went Wrong:
- Identify missed tasks
- Note consistency issues

Possible Reasons:
- Analyze why tasks were missed
- Consider mood and workload factors

Suggestions for Next Week:
- Give 2-3 specific, actionable improvements
- Be encouraging and realistic

Keep each section to 2-3 bullet points.`,
		data.TotalTasks, data.CompletedTasks, completionRate, data.MissedTasks,
		data.MainFocusDay, data.Mood, completedList, missedList)
}

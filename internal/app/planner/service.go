package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/weekwise/weekwise-api/internal/app/analysis"
	"github.com/weekwise/weekwise-api/internal/domain"
	"github.com/weekwise/weekwise-api/internal/observability"
)

const generateTasksMaxTokens = 1000
const insightsMaxTokens = 1000

// Service turns goals into tasks and weeks into insights. Unlike the
// analysis pipeline there is no rule-based fallback here: without the
// generation seam there is nothing useful to return, so failures
// surface to the caller.
type Service struct {
	gen domain.TextGenerator
}

func NewService(gen domain.TextGenerator) *Service {
	return &Service{gen: gen}
}

// GenerateTasks breaks a weekly goal into 5-7 actionable tasks by
// parsing the bullet lines of the generated response.
func (s *Service) GenerateTasks(ctx context.Context, goalName, goalCategory string) ([]string, error) {
	if strings.TrimSpace(goalName) == "" {
		return nil, &domain.InputError{Field: "goal_name", Reason: "is required"}
	}
	if goalCategory == "" {
		goalCategory = "General"
	}

	log := observability.LoggerFromContext(ctx).With("goal", goalName)

	prompt := fmt.Sprintf(`You are a student productivity expert. Break down this weekly goal into 5-7 specific, actionable tasks.

Goal: %q
Category: %s

Requirements:
- Each task should be realistic (30 mins - 2 hours)
- Include variety: studying, practice, projects, review
- Make tasks concrete and measurable
- Consider student energy levels
- Format: One task per line, starting with •

Generate tasks now:`, goalName, goalCategory)

	raw, err := s.gen.Generate(ctx, prompt, generateTasksMaxTokens)
	if err != nil {
		log.Error("task generation failed", "error", err)
		return nil, err
	}

	tasks := parseBulletLines(raw)
	log.Info("generated tasks", "count", len(tasks))
	return tasks, nil
}

// Insights asks for 3-5 bullet insights over the week's workload shape
// and returns the text as-is.
func (s *Service) Insights(ctx context.Context, tasks []domain.Task, mainFocusDay domain.Weekday, mood domain.Mood) (string, error) {
	if len(tasks) == 0 {
		return "", &domain.InputError{Field: "daily_tasks", Reason: "is required"}
	}

	tasksByDay := analysis.GroupTasksByDay(tasks)

	var workload strings.Builder
	for _, day := range domain.Week {
		if n := len(tasksByDay[day]); n > 0 {
			fmt.Fprintf(&workload, "%s: %d tasks\n", day, n)
		}
	}

	prompt := fmt.Sprintf(`You are a productivity coach.

Weekly workload:
%s
Main focus day: %s
Mood: %s

Give 3-5 concise bullet insights to optimize this week.`, workload.String(), mainFocusDay, mood)

	insights, err := s.gen.Generate(ctx, prompt, insightsMaxTokens)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("insights generation failed", "error", err)
		return "", err
	}

	return insights, nil
}

// parseBulletLines keeps lines starting with a bullet marker and strips
// the marker, dropping everything else the model wrapped around them.
func parseBulletLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		var content string
		switch {
		case strings.HasPrefix(trimmed, "•"):
			content = strings.TrimPrefix(trimmed, "•")
		case strings.HasPrefix(trimmed, "-"):
			content = strings.TrimPrefix(trimmed, "-")
		default:
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			out = append(out, content)
		}
	}
	return out
}

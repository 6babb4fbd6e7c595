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

// ReflectionSections is the four-part narrative of a weekly reflection.
type ReflectionSections struct {
	WhatWentWell    []string `json:"what_went_well"`
	WhatWentWrong   []string `json:"what_went_wrong"`
	PossibleReasons []string `json:"possible_reasons"`
	Suggestions     []string `json:"suggestions"`
}

// ReflectionResult is the end-of-week analysis. RawResponse keeps the
// unparsed augmented text so clients can show it verbatim if the
// section parse came up short.
type ReflectionResult struct {
	Summary      domain.WeekSummary `json:"week_summary"`
	Sections     ReflectionSections `json:"reflection"`
	RawResponse  string             `json:"raw_response,omitempty"`
	FallbackMode bool               `json:"fallback_mode"`
	Timestamp    time.Time          `json:"timestamp"`
}

// GenerateReflection computes the week's completion statistics and asks
// the seam for a four-section narrative. If generation fails, the
// deterministic rule-based reflection takes its place. The only error
// returned is an InputError for a non-positive task total.
func (s *Service) GenerateReflection(ctx context.Context, data domain.WeekData) (*ReflectionResult, error) {
	if data.TotalTasks <= 0 {
		return nil, &domain.InputError{Field: "total_tasks", Reason: "must be positive"}
	}

	completionRate := int(math.Round(float64(data.CompletedTasks) / float64(data.TotalTasks) * 100))

	result := &ReflectionResult{
		Summary: domain.WeekSummary{
			TotalTasks:     data.TotalTasks,
			CompletedTasks: data.CompletedTasks,
			MissedTasks:    data.MissedTasks,
			CompletionRate: completionRate,
			Mood:           data.Mood,
			MainFocusDay:   data.MainFocusDay,
		},
		Timestamp: s.now(),
	}

	raw, err := s.gen.Generate(ctx, buildReflectionPrompt(data, completionRate), maxTokensNarrative)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("augmented reflection failed",
			"completion_rate", completionRate,
			"error", err,
		)
		result.Sections = fallbackReflection(data, completionRate)
		result.FallbackMode = true
		return result, nil
	}

	result.Sections = parseReflectionSections(raw)
	result.RawResponse = raw
	return result, nil
}

// parseReflectionSections is a tolerant line-oriented parser over the
// generated narrative: section headers match by case-insensitive
// substring, bullet lines (-, •, *) under a recognized header are
// collected, everything else is discarded. The text format is a
// best-effort legacy contract, not a schema.
func parseReflectionSections(raw string) ReflectionSections {
	sections := ReflectionSections{
		WhatWentWell:    []string{},
		WhatWentWrong:   []string{},
		PossibleReasons: []string{},
		Suggestions:     []string{},
	}

	var current *[]string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		lower := strings.ToLower(trimmed)
		switch {
		case strings.Contains(lower, "what went well"):
			current = &sections.WhatWentWell
		case strings.Contains(lower, "what went wrong"):
			current = &sections.WhatWentWrong
		case strings.Contains(lower, "possible reasons"):
			current = &sections.PossibleReasons
		case strings.Contains(lower, "suggestions"):
			current = &sections.Suggestions
		default:
			if current == nil {
				continue
			}
			content, ok := stripBullet(trimmed)
			if ok && content != "" {
				*current = append(*current, content)
			}
		}
	}

	return sections
}

func stripBullet(line string) (string, bool) {
	for _, prefix := range []string{"-", "•", "*"} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return "", false
}

// fallbackReflection is the deterministic substitute when generation
// fails: completion-rate tiers pick the positive remarks, missed count
// and mood drive the rest, and suggestions are never empty.
func fallbackReflection(data domain.WeekData, completionRate int) ReflectionSections {
	sections := ReflectionSections{
		WhatWentWell:    []string{},
		WhatWentWrong:   []string{},
		PossibleReasons: []string{},
		Suggestions:     []string{},
	}

	switch {
	case completionRate >= 80:
		sections.WhatWentWell = append(sections.WhatWentWell,
			"Excellent completion rate - you stayed consistent!",
			"Strong commitment to your goals this week")
	case completionRate >= 60:
		sections.WhatWentWell = append(sections.WhatWentWell,
			"Good progress on majority of tasks",
			"Maintained momentum despite challenges")
	default:
		sections.WhatWentWell = append(sections.WhatWentWell,
			fmt.Sprintf("Completed %d tasks - that's still progress", data.CompletedTasks))
	}

	if data.MissedTasks > 0 {
		sections.WhatWentWrong = append(sections.WhatWentWrong,
			fmt.Sprintf("%d tasks were skipped or incomplete", data.MissedTasks))
		if completionRate < 50 {
			sections.WhatWentWrong = append(sections.WhatWentWrong,
				"More than half of planned tasks were missed")
		}
	}

	if data.Mood == domain.MoodTired || data.Mood == domain.MoodStressed {
		sections.PossibleReasons = append(sections.PossibleReasons,
			fmt.Sprintf("Your mood (%s) may have impacted energy levels", data.Mood))
	}
	if completionRate < 50 {
		sections.PossibleReasons = append(sections.PossibleReasons,
			"Weekly plan may have been too ambitious")
	}

	sections.Suggestions = append(sections.Suggestions,
		"Start with smaller, achievable tasks to build momentum",
		"Focus on consistency over perfection")
	if completionRate < 70 {
		sections.Suggestions = append(sections.Suggestions,
			"Reduce task difficulty or quantity for next week")
	}

	return sections
}

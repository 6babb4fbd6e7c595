package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/weekwise/weekwise-api/internal/domain"
	"github.com/weekwise/weekwise-api/internal/observability"
)

// OverthinkingResult reports whether the anti-overthinking guard fired
// and with what message. The guard keeps no state: the caller tracks
// edit counts and computes days of inactivity before each call.
type OverthinkingResult struct {
	Triggered    bool            `json:"triggered"`
	Severity     domain.Severity `json:"severity,omitempty"`
	EditCount    int             `json:"edit_count"`
	DaysInactive int             `json:"days_inactive"`
	Message      string          `json:"message,omitempty"`
	Nudge        string          `json:"nudge,omitempty"`
	FallbackMode bool            `json:"fallback_mode"`
	Timestamp    time.Time       `json:"timestamp"`
}

// CheckOverthinking evaluates the trigger ladder in priority order:
// 10+ edits asks the seam for a direct message, 5+ edits for a gentle
// one, 3+ inactive days uses a canned tiered message, otherwise the
// guard stays quiet. A seam failure substitutes the canned edit-count
// warning and flags the result as fallback.
func (s *Service) CheckOverthinking(ctx context.Context, editCount, daysInactive int) *OverthinkingResult {
	isOverthinking := editCount >= 5
	isSevere := editCount >= 10
	longInactive := daysInactive >= 3

	result := &OverthinkingResult{
		EditCount:    editCount,
		DaysInactive: daysInactive,
		Severity:     domain.SeverityNone,
		Timestamp:    s.now(),
	}

	if !isOverthinking && !longInactive {
		return result
	}

	result.Triggered = true
	result.Nudge = s.ExecutionNudge()

	switch {
	case isSevere:
		result.Severity = domain.SeveritySevere
		msg, err := s.generateWarning(ctx, editCount, domain.SeveritySevere)
		if err != nil {
			return s.overthinkingFallback(ctx, result, err)
		}
		result.Message = msg

	case isOverthinking:
		result.Severity = domain.SeverityModerate
		msg, err := s.generateWarning(ctx, editCount, domain.SeverityModerate)
		if err != nil {
			return s.overthinkingFallback(ctx, result, err)
		}
		result.Message = msg

	case longInactive:
		result.Severity = domain.SeverityInactive
		result.Message = inactivityMessage(daysInactive)
	}

	return result
}

func (s *Service) generateWarning(ctx context.Context, editCount int, severity domain.Severity) (string, error) {
	raw, err := s.gen.Generate(ctx, buildOverthinkingPrompt(editCount, severity), maxTokensShort)
	if err != nil {
		return "", err
	}
	// The prompt forbids quotes but models slip them in anyway.
	cleaned := strings.NewReplacer(`"`, "", "'", "").Replace(strings.TrimSpace(raw))
	return cleaned, nil
}

func (s *Service) overthinkingFallback(ctx context.Context, result *OverthinkingResult, err error) *OverthinkingResult {
	observability.LoggerFromContext(ctx).Warn("overthinking warning generation failed",
		"edit_count", result.EditCount,
		"error", err,
	)
	result.Message = ruleBasedWarning(result.EditCount)
	result.FallbackMode = true
	return result
}

// ruleBasedWarning selects the canned warning for an edit count.
func ruleBasedWarning(editCount int) string {
	switch {
	case editCount >= 10:
		return "🛑 STOP PLANNING! You've edited this 10+ times. Start executing NOW."
	case editCount >= 7:
		return "⚠️ Too much planning. Time to take action. Execution beats perfection."
	case editCount >= 5:
		return "💭 You've planned enough. Start working on your first task right now."
	default:
		return "📝 Your plan looks good. Time to execute!"
	}
}

// inactivityMessage selects the canned message for days of inactivity,
// strongest tier first.
func inactivityMessage(daysInactive int) string {
	switch {
	case daysInactive >= 7:
		return "⏰ It's been a week! Your plan is waiting. Start with the easiest task today."
	case daysInactive >= 5:
		return "⏰ 5 days inactive. Don't let momentum die. Begin now."
	default:
		return "⏰ 3+ days inactive. Even 10 minutes of work keeps progress alive."
	}
}

// ShouldWarn reports whether the guard would fire at all.
func ShouldWarn(editCount, daysInactive int) bool {
	return editCount >= 5 || daysInactive >= 3
}

// SeverityLevel is the finer-grained classification used for UI badges.
// It deliberately uses different tiers than the trigger ladder above;
// the two answer different questions and are kept separate.
func SeverityLevel(editCount, daysInactive int) domain.Severity {
	switch {
	case editCount >= 10:
		return domain.SeverityCritical
	case editCount >= 7 || daysInactive >= 7:
		return domain.SeveritySevere
	case editCount >= 5 || daysInactive >= 3:
		return domain.SeverityModerate
	default:
		return domain.SeverityNone
	}
}

var executionNudges = []string{
	"✅ Start with your easiest task right now",
	"⚡ 10 minutes of action > hours of planning",
	"🎯 Pick one task and begin. Don't think, just do.",
	"💪 Momentum starts with one small step today",
	"🚀 The best plan is the one you actually execute",
}

// ExecutionNudge picks one nudge uniformly at random from the fixed set.
func (s *Service) ExecutionNudge() string {
	return executionNudges[s.rng.Intn(len(executionNudges))]
}

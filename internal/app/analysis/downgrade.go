package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/weekwise/weekwise-api/internal/domain"
	"github.com/weekwise/weekwise-api/internal/observability"
)

// DowngradeResult pairs the rule-based alternative with the optional
// augmented one; the caller chooses which to present.
type DowngradeResult struct {
	OriginalTask string            `json:"original_task"`
	Difficulty   domain.Difficulty `json:"difficulty"`
	MissedCount  int               `json:"missed_count"`
	RuleBased    string            `json:"rule_based"`
	AIGenerated  string            `json:"ai_generated,omitempty"`
	Message      string            `json:"message"`
	FallbackMode bool              `json:"fallback_mode"`
	Timestamp    time.Time         `json:"timestamp"`
}

// downgradeCategory maps a keyword set to pre-authored lighter
// alternatives per difficulty. Categories are tested in declaration
// order; the first match wins.
type downgradeCategory struct {
	keywords     []string
	alternatives map[domain.Difficulty]string
}

var downgradeCategories = []downgradeCategory{
	{
		keywords: []string{"gym", "workout"},
		alternatives: map[domain.Difficulty]string{
			domain.DifficultyHard:   "20-minute light cardio or stretching",
			domain.DifficultyMedium: "10-minute walk or yoga",
			domain.DifficultyEasy:   "5-minute stretching or mobility exercises",
		},
	},
	{
		keywords: []string{"study", "learn", "read"},
		alternatives: map[domain.Difficulty]string{
			domain.DifficultyHard:   "Review notes for 15 minutes",
			domain.DifficultyMedium: "Skim important topics for 10 minutes",
			domain.DifficultyEasy:   "Quick 5-minute concept recap",
		},
	},
	{
		keywords: []string{"code", "program", "debug"},
		alternatives: map[domain.Difficulty]string{
			domain.DifficultyHard:   "Read documentation or watch a tutorial for 15 minutes",
			domain.DifficultyMedium: "Review core coding concepts for 10 minutes",
			domain.DifficultyEasy:   "Solve one small coding problem (5–10 minutes)",
		},
	},
	{
		keywords: []string{"write", "essay", "report"},
		alternatives: map[domain.Difficulty]string{
			domain.DifficultyHard:   "Create an outline or bullet points only",
			domain.DifficultyMedium: "Write one paragraph or key points",
			domain.DifficultyEasy:   "Brainstorm ideas for 10 minutes",
		},
	},
	{
		keywords: []string{"practice", "revision"},
		alternatives: map[domain.Difficulty]string{
			domain.DifficultyHard:   "Complete 3 easy problems",
			domain.DifficultyMedium: "Review solved examples",
			domain.DifficultyEasy:   "Quick concept revision (10 minutes)",
		},
	},
}

var genericDowngrades = map[domain.Difficulty]string{
	domain.DifficultyHard:   "Reduce scope to 20–30 minutes of easier work",
	domain.DifficultyMedium: "Reduce task to 15 minutes of simplified work",
	domain.DifficultyEasy:   "Spend just 10 minutes on the easiest part",
}

// SuggestDowngrade produces a lighter alternative for a repeatedly
// missed task. The rule-based lookup always succeeds; the augmented
// suggestion is best-effort and its failure only flips fallback mode.
func (s *Service) SuggestDowngrade(ctx context.Context, taskName string, difficulty domain.Difficulty, missedCount int) *DowngradeResult {
	result := &DowngradeResult{
		OriginalTask: taskName,
		Difficulty:   difficulty,
		MissedCount:  missedCount,
		RuleBased:    RuleBasedDowngrade(taskName, difficulty),
		Timestamp:    s.now(),
	}

	aiSuggestion, err := s.gen.Generate(ctx, buildDowngradePrompt(taskName, difficulty, missedCount), maxTokensShort)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("augmented downgrade suggestion failed",
			"task", taskName,
			"error", err,
		)
		result.Message = fmt.Sprintf("Consider this easier alternative for %q.", taskName)
		result.FallbackMode = true
		return result
	}

	result.AIGenerated = strings.TrimSpace(aiSuggestion)
	result.Message = fmt.Sprintf("You've missed %q %d times. Here's an easier alternative to keep momentum.", taskName, missedCount)
	return result
}

// RuleBasedDowngrade is the pure keyword lookup. Unmatched task names
// fall through to the generic difficulty-keyed reduction.
func RuleBasedDowngrade(taskName string, difficulty domain.Difficulty) string {
	taskLower := strings.ToLower(taskName)

	for _, cat := range downgradeCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(taskLower, kw) {
				return cat.alternatives[normalizeDifficulty(difficulty)]
			}
		}
	}
	return genericDowngrades[normalizeDifficulty(difficulty)]
}

// ShouldSuggestDowngrade decides whether a downgrade is worth offering:
// Hard tasks after 2 misses, Medium after 3, Easy after 4.
func ShouldSuggestDowngrade(difficulty domain.Difficulty, missedCount int) bool {
	switch difficulty {
	case domain.DifficultyHard:
		return missedCount >= 2
	case domain.DifficultyMedium:
		return missedCount >= 3
	case domain.DifficultyEasy:
		return missedCount >= 4
	}
	return false
}

// normalizeDifficulty folds unknown difficulties onto Easy, matching
// the lookup tables which only key the three known values.
func normalizeDifficulty(d domain.Difficulty) domain.Difficulty {
	switch d {
	case domain.DifficultyHard, domain.DifficultyMedium:
		return d
	default:
		return domain.DifficultyEasy
	}
}

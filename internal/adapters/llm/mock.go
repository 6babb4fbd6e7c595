package llm

import (
	"context"
	"strings"
)

// MockGenerator is a deterministic stand-in for local development and
// tests. It answers with a canned response shaped roughly like what
// each prompt asks for, keyed off recognizable prompt fragments.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	switch {
	case strings.Contains(prompt, "weekly reflection"):
		return `What Went Well:
- You kept your main focus day clear
- Most tasks were completed on time

What Went Wrong:
- A few tasks slipped toward the end of the week

Possible Reasons:
- The week was front-loaded

Suggestions:
- Spread tasks more evenly across the week
- Keep Friday lighter`, nil

	case strings.Contains(prompt, "Break down this weekly goal"):
		return `• Review the course outline for 30 minutes
• Work through one practice set
• Summarize key concepts in your own words
• Do a 45-minute focused project session
• Quick review of this week's notes`, nil

	default:
		return "This plan is workable. Move one task off the heaviest day and protect your focus day.", nil
	}
}

package analysis

import (
	"context"
	"math/rand"
	"time"

	"github.com/weekwise/weekwise-api/internal/domain"
)

// stubGenerator records every prompt and replies with a fixed response
// or a fixed error.
type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

var testTime = time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

func newTestService(gen domain.TextGenerator) *Service {
	return &Service{
		gen: gen,
		now: func() time.Time { return testTime },
		rng: rand.New(&lockedSource{src: rand.NewSource(1)}),
	}
}

package planner

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/weekwise/weekwise-api/internal/domain"
)

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

func TestGenerateTasks_ParsesBulletLines(t *testing.T) {
	gen := &stubGenerator{response: `Here are your tasks:

• Review lecture notes for 45 minutes
- Solve 10 practice problems
Some commentary the model added.
•   Build a one-page summary
-
• `}
	svc := NewService(gen)

	tasks, err := svc.GenerateTasks(context.Background(), "Pass the algorithms exam", "Study")
	if err != nil {
		t.Fatalf("GenerateTasks failed: %v", err)
	}

	want := []string{
		"Review lecture notes for 45 minutes",
		"Solve 10 practice problems",
		"Build a one-page summary",
	}
	if !reflect.DeepEqual(tasks, want) {
		t.Fatalf("tasks mismatch:\ngot  %v\nwant %v", tasks, want)
	}

	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], `"Pass the algorithms exam"`) {
		t.Fatalf("prompt did not carry the goal: %v", gen.prompts)
	}
}

func TestGenerateTasks_RequiresGoalName(t *testing.T) {
	svc := NewService(&stubGenerator{response: "unused"})

	_, err := svc.GenerateTasks(context.Background(), "   ", "")

	var inputErr *domain.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestGenerateTasks_PropagatesGenerationFailure(t *testing.T) {
	genErr := &domain.GenerationError{Cause: "quota exceeded"}
	svc := NewService(&stubGenerator{err: genErr})

	_, err := svc.GenerateTasks(context.Background(), "Learn Go", "")
	if !errors.Is(err, genErr) {
		t.Fatalf("expected generation error to propagate, got %v", err)
	}
}

func TestInsights_SummarizesWorkloadInPrompt(t *testing.T) {
	gen := &stubGenerator{response: "- Protect Wednesday\n- Batch the small tasks"}
	svc := NewService(gen)

	tasks := []domain.Task{
		{Day: domain.Monday, Name: "a"},
		{Day: domain.Monday, Name: "b"},
		{Day: domain.Friday, Name: "c"},
	}

	insights, err := svc.Insights(context.Background(), tasks, domain.Wednesday, domain.MoodStressed)
	if err != nil {
		t.Fatalf("Insights failed: %v", err)
	}
	if insights != gen.response {
		t.Fatalf("insights must pass through verbatim, got %q", insights)
	}

	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Monday: 2 tasks") || !strings.Contains(prompt, "Friday: 1 tasks") {
		t.Fatalf("prompt missing workload summary:\n%s", prompt)
	}
	if strings.Contains(prompt, "Tuesday") {
		t.Fatalf("empty days should not appear in the workload summary:\n%s", prompt)
	}
}

func TestInsights_RequiresTasks(t *testing.T) {
	svc := NewService(&stubGenerator{response: "unused"})

	_, err := svc.Insights(context.Background(), nil, domain.Monday, domain.MoodNormal)

	var inputErr *domain.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

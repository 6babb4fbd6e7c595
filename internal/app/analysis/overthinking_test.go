package analysis

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/weekwise/weekwise-api/internal/domain"
)

func TestCheckOverthinking_TriggerLadder(t *testing.T) {
	cases := []struct {
		name          string
		editCount     int
		daysInactive  int
		wantTriggered bool
		wantSeverity  domain.Severity
	}{
		{"below all thresholds", 4, 0, false, domain.SeverityNone},
		{"moderate at five edits", 5, 0, true, domain.SeverityModerate},
		{"severe at ten edits", 10, 0, true, domain.SeveritySevere},
		{"inactive at three days", 0, 3, true, domain.SeverityInactive},
		{"edits win over inactivity", 5, 10, true, domain.SeverityModerate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(&stubGenerator{response: "Planned enough. Go."})

			result := svc.CheckOverthinking(context.Background(), tc.editCount, tc.daysInactive)

			if result.Triggered != tc.wantTriggered {
				t.Fatalf("triggered=%t, want %t", result.Triggered, tc.wantTriggered)
			}
			if result.Severity != tc.wantSeverity {
				t.Fatalf("severity=%s, want %s", result.Severity, tc.wantSeverity)
			}
			if tc.wantTriggered && result.Message == "" {
				t.Fatal("triggered result must carry a message")
			}
			if !tc.wantTriggered && result.Message != "" {
				t.Fatalf("untriggered result must not carry a message, got %q", result.Message)
			}
		})
	}
}

func TestCheckOverthinking_InactivityMessageTiers(t *testing.T) {
	svc := newTestService(&stubGenerator{response: "unused"})

	cases := []struct {
		daysInactive int
		wantContains string
	}{
		{3, "3+ days inactive"},
		{4, "3+ days inactive"},
		{5, "5 days inactive"},
		{7, "It's been a week"},
		{12, "It's been a week"},
	}

	for _, tc := range cases {
		result := svc.CheckOverthinking(context.Background(), 0, tc.daysInactive)
		if !strings.Contains(result.Message, tc.wantContains) {
			t.Errorf("daysInactive=%d: message %q does not contain %q", tc.daysInactive, result.Message, tc.wantContains)
		}
		if result.FallbackMode {
			t.Errorf("daysInactive=%d: canned message is not fallback mode", tc.daysInactive)
		}
	}
}

func TestCheckOverthinking_StripsQuotesFromGeneratedMessage(t *testing.T) {
	svc := newTestService(&stubGenerator{response: ` "Stop 'planning'. Start doing." `})

	result := svc.CheckOverthinking(context.Background(), 6, 0)

	if strings.ContainsAny(result.Message, `"'`) {
		t.Fatalf("quotes not stripped: %q", result.Message)
	}
	if result.Message != "Stop planning. Start doing." {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestCheckOverthinking_GenerationFailureFallsBack(t *testing.T) {
	gen := &stubGenerator{err: &domain.GenerationError{Cause: "timeout"}}
	svc := newTestService(gen)

	result := svc.CheckOverthinking(context.Background(), 10, 0)

	if !result.Triggered {
		t.Fatal("expected triggered")
	}
	if !result.FallbackMode {
		t.Fatal("expected fallback mode")
	}
	if result.Severity != domain.SeveritySevere {
		t.Fatalf("severity=%s, want severe", result.Severity)
	}
	if !strings.Contains(result.Message, "STOP PLANNING") {
		t.Fatalf("expected 10+ edits canned warning, got %q", result.Message)
	}

	moderate := svc.CheckOverthinking(context.Background(), 5, 0)
	if !strings.Contains(moderate.Message, "You've planned enough") {
		t.Fatalf("expected 5+ edits canned warning, got %q", moderate.Message)
	}
	if !moderate.FallbackMode {
		t.Fatal("expected fallback mode")
	}
}

func TestShouldWarn(t *testing.T) {
	cases := []struct {
		editCount, daysInactive int
		want                    bool
	}{
		{5, 0, true},
		{0, 3, true},
		{4, 2, false},
		{0, 0, false},
	}
	for _, tc := range cases {
		if got := ShouldWarn(tc.editCount, tc.daysInactive); got != tc.want {
			t.Errorf("ShouldWarn(%d, %d) = %t, want %t", tc.editCount, tc.daysInactive, got, tc.want)
		}
	}
}

func TestSeverityLevel(t *testing.T) {
	cases := []struct {
		editCount, daysInactive int
		want                    domain.Severity
	}{
		{10, 0, domain.SeverityCritical},
		{12, 12, domain.SeverityCritical},
		{7, 0, domain.SeveritySevere},
		{0, 7, domain.SeveritySevere},
		{5, 0, domain.SeverityModerate},
		{0, 3, domain.SeverityModerate},
		{4, 2, domain.SeverityNone},
	}
	for _, tc := range cases {
		if got := SeverityLevel(tc.editCount, tc.daysInactive); got != tc.want {
			t.Errorf("SeverityLevel(%d, %d) = %s, want %s", tc.editCount, tc.daysInactive, got, tc.want)
		}
	}
}

func TestExecutionNudge_SeededSourceIsDeterministic(t *testing.T) {
	a := newTestService(&stubGenerator{})
	b := newTestService(&stubGenerator{})

	for i := 0; i < 10; i++ {
		na, nb := a.ExecutionNudge(), b.ExecutionNudge()
		if na != nb {
			t.Fatalf("same seed, different nudges: %q vs %q", na, nb)
		}

		found := false
		for _, n := range executionNudges {
			if n == na {
				found = true
			}
		}
		if !found {
			t.Fatalf("nudge %q not in the fixed set", na)
		}
	}
}

func TestCheckOverthinking_ConcurrentCallsShareTheService(t *testing.T) {
	svc := newTestService(&stubGenerator{response: "Take one small step."})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				res := svc.CheckOverthinking(context.Background(), 0, 5)
				if !res.Triggered || res.Nudge == "" {
					t.Error("expected a triggered result with a nudge")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestExecutionNudge_CoversFixedSet(t *testing.T) {
	svc := newTestService(&stubGenerator{})
	svc.rng = rand.New(rand.NewSource(42))

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[svc.ExecutionNudge()] = true
	}
	if len(seen) != len(executionNudges) {
		t.Fatalf("expected all %d nudges to appear, saw %d", len(executionNudges), len(seen))
	}
}

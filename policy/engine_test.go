package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), DefaultPolicy())
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

func TestEvaluateEscalation(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input Input
		want  bool
	}{
		{"low total, no ideation", Input{Tier: domain.TierNormal, TotalScore: 2, SuicideScore: 0}, false},
		{"mild band", Input{Tier: domain.TierMild, TotalScore: 9, SuicideScore: 1}, false},
		{"total at threshold", Input{Tier: domain.TierModerate, TotalScore: 10, SuicideScore: 1}, true},
		{"suicide override with low total", Input{Tier: domain.TierSuicideRisk, TotalScore: 4, SuicideScore: 2}, true},
		{"severe band", Input{Tier: domain.TierSevere, TotalScore: 16, SuicideScore: 1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.Evaluate(ctx, tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// The notify predicate must be monotone: raising the total score never turns
// an escalation off.
func TestEvaluateMonotone(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	escalated := false
	for total := 0; total <= 20; total++ {
		got, err := engine.Evaluate(ctx, Input{TotalScore: total, SuicideScore: 0})
		if err != nil {
			t.Fatalf("Evaluate failed at total=%d: %v", total, err)
		}
		if escalated && !got {
			t.Fatalf("escalation turned off at total=%d", total)
		}
		escalated = got
	}
}

// Package policy evaluates the escalation policy: whether a scored
// assessment must notify a counselor and route to crisis resources.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.escalation.escalate"),
		rego.Module("escalation.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Input is the policy input for one scored assessment.
type Input struct {
	Tier         domain.RiskTier `json:"tier"`
	TotalScore   int             `json:"total_score"`
	SuicideScore int             `json:"suicide_score"`
}

// Evaluate returns whether the escalation predicate holds. A true result
// drives both the counselor notification and the crisis-resources route.
func (e *Engine) Evaluate(ctx context.Context, in Input) (bool, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(in))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default, so an empty result set means the
		// module is broken rather than "no match".
		return false, fmt.Errorf("policy returned no result")
	}

	val, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("policy returned non-boolean %T", results[0].Expressions[0].Value)
	}
	return val, nil
}

// DefaultPolicy returns the escalation policy content. Thresholds are
// interpolated from the same constants the classifier uses, so the two
// cannot drift apart.
func DefaultPolicy() string {
	return fmt.Sprintf(`
package escalation

import rego.v1

default escalate := false

escalate if input.suicide_score >= %d

escalate if input.total_score >= %d
`, domain.SuicideOverrideScore, domain.NotifyTotalScore)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
	"github.com/Zio20687/mental-health-ai-app/policy"
)

func TestSubmitAssessmentNormal(t *testing.T) {
	svc, _, sink := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	resp, err := svc.SubmitAssessment(ctx, session.SessionID, &domain.SubmitAssessmentRequest{
		AgeGroup: "15~24歲",
		Gender:   "女",
		Answers: completeAnswers(map[string]string{
			"sleep":   "輕微",
			"anxiety": "輕微",
		}),
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Result.TotalScore)
	assert.Equal(t, 0, resp.Result.SuicideScore)
	assert.Equal(t, domain.TierNormal, resp.Result.Tier)
	assert.False(t, resp.Escalated)
	assert.Empty(t, sink.Messages)
}

// A suicide answer of 中等程度 or above escalates even when the total is low.
func TestSubmitAssessmentSuicideOverride(t *testing.T) {
	svc, _, sink := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	resp, err := svc.SubmitAssessment(ctx, session.SessionID, &domain.SubmitAssessmentRequest{
		AgeGroup: "15~24歲",
		Gender:   "女",
		Answers: completeAnswers(map[string]string{
			"sleep":   "輕微",
			"anxiety": "輕微",
			"suicide": "中等程度",
		}),
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, resp.Result.TotalScore)
	assert.Equal(t, 2, resp.Result.SuicideScore)
	assert.Equal(t, domain.TierSuicideRisk, resp.Result.Tier)
	assert.True(t, resp.Escalated)
	assert.Empty(t, resp.NotifyWarning)

	if len(sink.Messages) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sink.Messages))
	}
	assert.Equal(t, "counselor@example.edu", sink.Messages[0].To)

	got, err := svc.GetSession(ctx, session.SessionID)
	assert.NoError(t, err)
	assert.True(t, got.NotifiedForResult)
	assert.False(t, got.AutoIntroSent)
}

func TestSubmitAssessmentModerateNotifies(t *testing.T) {
	svc, _, sink := newTestService(t)

	// Four items at 厲害 and suicide at 輕微: total 13, suicide 1.
	session := newScoredSession(t, svc, completeAnswers(map[string]string{
		"sleep":     "厲害",
		"anxiety":   "厲害",
		"mood":      "厲害",
		"selfworth": "厲害",
		"suicide":   "輕微",
	}))

	assert.Equal(t, 13, session.Result.TotalScore)
	assert.Equal(t, domain.TierModerate, session.Result.Tier)
	assert.True(t, session.NotifiedForResult)
	assert.Len(t, sink.Messages, 1)
}

func TestSubmitAssessmentIncompleteRejected(t *testing.T) {
	svc, _, sink := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	answers := completeAnswers(nil)
	answers["suicide"] = domain.AnswerSentinel

	_, err = svc.SubmitAssessment(ctx, session.SessionID, &domain.SubmitAssessmentRequest{
		AgeGroup: "15~24歲",
		Gender:   "女",
		Answers:  answers,
	})
	var incomplete *domain.IncompleteInputError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteInputError, got %v", err)
	}
	assert.Equal(t, []string{"suicide"}, incomplete.MissingQuestions)

	// No state change, no downstream calls.
	got, err := svc.GetSession(ctx, session.SessionID)
	assert.NoError(t, err)
	assert.False(t, got.Scored())
	assert.Equal(t, domain.AnswerSentinel, got.Demographics.AgeGroup)
	assert.Empty(t, sink.Messages)
}

func TestSubmitAssessmentMissingDemographics(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	_, err = svc.SubmitAssessment(ctx, session.SessionID, &domain.SubmitAssessmentRequest{
		AgeGroup: domain.AnswerSentinel,
		Gender:   "女",
		Answers:  completeAnswers(nil),
	})
	var incomplete *domain.IncompleteInputError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteInputError, got %v", err)
	}
	assert.True(t, incomplete.MissingDemographics)
}

// A sink failure surfaces as a warning and never rolls back the result.
func TestSubmitAssessmentNotificationFailure(t *testing.T) {
	svc, _, sink := newTestService(t)
	sink.Err = errors.New("smtp unreachable")
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	resp, err := svc.SubmitAssessment(ctx, session.SessionID, &domain.SubmitAssessmentRequest{
		AgeGroup: "25~44歲",
		Gender:   "男",
		Answers: completeAnswers(map[string]string{
			"suicide": "非常厲害",
		}),
	})
	assert.NoError(t, err)
	assert.True(t, resp.Escalated)
	assert.NotEmpty(t, resp.NotifyWarning)
	assert.Equal(t, domain.TierSuicideRisk, resp.Result.Tier)

	got, err := svc.GetSession(ctx, session.SessionID)
	assert.NoError(t, err)
	assert.True(t, got.Scored())
	assert.False(t, got.NotifiedForResult)
}

// A policy-evaluation failure after scoring surfaces as a warning, like a
// sink failure, and never discards the persisted result.
func TestSubmitAssessmentPolicyFailureKeepsResult(t *testing.T) {
	svc, _, sink := newTestService(t)
	ctx := context.Background()

	// Same query path, but escalate is not a boolean.
	broken, err := policy.NewEngine(ctx, "package escalation\n\nescalate := 1\n")
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	svc.policy = broken

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	resp, err := svc.SubmitAssessment(ctx, session.SessionID, &domain.SubmitAssessmentRequest{
		AgeGroup: "15~24歲",
		Gender:   "女",
		Answers: completeAnswers(map[string]string{
			"suicide": "非常厲害",
		}),
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.TierSuicideRisk, resp.Result.Tier)
	assert.False(t, resp.Escalated)
	assert.NotEmpty(t, resp.NotifyWarning)
	assert.Empty(t, sink.Messages)

	got, err := svc.GetSession(ctx, session.SessionID)
	assert.NoError(t, err)
	assert.True(t, got.Scored())
}

func TestSubmitAssessmentResubmitRearmsFlags(t *testing.T) {
	svc, _, sink := newTestService(t)
	ctx := context.Background()

	session := newScoredSession(t, svc, completeAnswers(map[string]string{
		"suicide": "中等程度",
	}))
	assert.True(t, session.NotifiedForResult)
	firstResultID := session.Result.ResultID

	// A second escalating submission is a new result and notifies again.
	resp, err := svc.SubmitAssessment(ctx, session.SessionID, &domain.SubmitAssessmentRequest{
		AgeGroup: "15~24歲",
		Gender:   "女",
		Answers: completeAnswers(map[string]string{
			"suicide": "厲害",
		}),
	})
	assert.NoError(t, err)
	assert.NotEqual(t, firstResultID, resp.Result.ResultID)
	assert.Len(t, sink.Messages, 2)
}

func TestRoute(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session := newScoredSession(t, svc, completeAnswers(map[string]string{
		"sleep": "輕微",
	}))
	route, err := svc.Route(ctx, session.SessionID)
	assert.NoError(t, err)
	assert.False(t, route.Crisis)
	assert.Empty(t, route.Resources)

	crisis := newScoredSession(t, svc, completeAnswers(map[string]string{
		"suicide": "中等程度",
	}))
	route, err = svc.Route(ctx, crisis.SessionID)
	assert.NoError(t, err)
	assert.True(t, route.Crisis)
	assert.Equal(t, domain.CrisisResources, route.Resources)
}

func TestRouteRequiresResult(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	_, err = svc.Route(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrNoResult)
}

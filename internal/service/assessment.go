package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
	"github.com/Zio20687/mental-health-ai-app/policy"
)

// SubmitAssessment scores a full questionnaire submission and replaces the
// session's result wholesale. Incomplete input is rejected with no state
// change and no downstream calls.
func (s *Service) SubmitAssessment(ctx context.Context, sessionID string, req *domain.SubmitAssessmentRequest) (*domain.SubmitAssessmentResponse, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	demographics := domain.Demographics{AgeGroup: req.AgeGroup, Gender: req.Gender}
	answers := domain.NewAnswers()
	for id, label := range req.Answers {
		if _, ok := answers[id]; ok {
			answers[id] = label
		}
	}

	incomplete := &domain.IncompleteInputError{
		MissingQuestions:    answers.Missing(),
		MissingDemographics: !demographics.Complete(),
	}
	if len(incomplete.MissingQuestions) > 0 || incomplete.MissingDemographics {
		return nil, incomplete
	}

	total, suicide, err := Score(answers)
	if err != nil {
		return nil, err
	}
	tier, recommendation := Classify(total, suicide)

	session.Demographics = demographics
	session.Answers = answers
	session.Result = &domain.AssessmentResult{
		ResultID:       uuid.NewString(),
		TotalScore:     total,
		SuicideScore:   suicide,
		Tier:           tier,
		Recommendation: recommendation,
		ComputedAt:     time.Now(),
	}
	// One-shot flags are scoped to a result; a fresh result re-arms both.
	session.AutoIntroSent = false
	session.NotifiedForResult = false

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("assessment scored",
		zap.String("session_id", sessionID),
		zap.Int("total_score", total),
		zap.String("tier", string(tier)))

	resp := &domain.SubmitAssessmentResponse{Result: session.Result}

	// The result is already persisted; a broken policy evaluation must not
	// turn a successful scoring pass into an error.
	escalate, err := s.escalationDue(ctx, session.Result)
	if err != nil {
		s.logger.Error("escalation policy evaluation failed",
			zap.String("session_id", sessionID), zap.Error(err))
		resp.NotifyWarning = "escalation check failed; the assessment result is unaffected"
		return resp, nil
	}
	resp.Escalated = escalate
	if escalate {
		resp.NotifyWarning = s.notifyCounselor(ctx, session)
	}

	return resp, nil
}

// escalationDue evaluates the escalation predicate for a result.
func (s *Service) escalationDue(ctx context.Context, result *domain.AssessmentResult) (bool, error) {
	escalate, err := s.policy.Evaluate(ctx, policy.Input{
		Tier:         result.Tier,
		TotalScore:   result.TotalScore,
		SuicideScore: result.SuicideScore,
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate escalation policy: %w", err)
	}
	return escalate, nil
}

// notifyCounselor fires the automatic counselor notification at most once
// per result. A sink failure is returned as a warning string and never rolls
// back the computed result.
func (s *Service) notifyCounselor(ctx context.Context, session *domain.Session) string {
	if session.NotifiedForResult {
		return ""
	}
	if s.cfg.CounselorEmail == "" {
		s.logger.Warn("escalation due but no counselor address configured",
			zap.String("session_id", session.SessionID))
		return "escalation due but no counselor is configured"
	}

	subject, body := counselorAlertMail(session)
	if err := s.sink.Send(s.cfg.CounselorEmail, subject, body); err != nil {
		s.logger.Error("counselor notification failed",
			zap.String("session_id", session.SessionID), zap.Error(err))
		return "counselor notification failed; the assessment result is unaffected"
	}

	session.NotifiedForResult = true
	if err := s.store.UpdateSession(ctx, session); err != nil {
		s.logger.Error("failed to record notification flag",
			zap.String("session_id", session.SessionID), zap.Error(err))
	}
	s.logger.Info("counselor notified",
		zap.String("session_id", session.SessionID),
		zap.String("tier", string(session.Result.Tier)))
	return ""
}

// Route decides the support path for the current result: crisis resources,
// or the music recommendation offer. Purely a routing decision; it never
// re-sends the counselor notification.
func (s *Service) Route(ctx context.Context, sessionID string) (*domain.RouteResponse, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.Scored() {
		return nil, ErrNoResult
	}

	crisis, err := s.escalationDue(ctx, session.Result)
	if err != nil {
		return nil, err
	}
	resp := &domain.RouteResponse{Crisis: crisis}
	if crisis {
		resp.Resources = domain.CrisisResources
	}
	return resp, nil
}

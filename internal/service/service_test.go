package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Zio20687/mental-health-ai-app/internal/adapter/llm"
	"github.com/Zio20687/mental-health-ai-app/internal/adapter/mail"
	"github.com/Zio20687/mental-health-ai-app/internal/config"
	"github.com/Zio20687/mental-health-ai-app/internal/domain"
	"github.com/Zio20687/mental-health-ai-app/internal/repository"
	"github.com/Zio20687/mental-health-ai-app/policy"
)

func newTestService(t *testing.T) (*Service, *llm.MockClient, *mail.MockSink) {
	t.Helper()

	store, err := repository.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy())
	if err != nil {
		t.Fatalf("failed to create policy engine: %v", err)
	}

	mockLLM := llm.NewMockClient()
	mockSink := mail.NewMockSink()

	cfg := &config.Config{
		ChatModel:       "gpt-4o",
		MusicModel:      "gpt-4",
		HistoryLimit:    50,
		CounselorEmail:  "counselor@example.edu",
		RecipientDomain: "gmail.com",
	}

	svc := New(store, mockLLM, mockSink, engine, cfg, zap.NewNop())
	return svc, mockLLM, mockSink
}

func newScoredSession(t *testing.T, svc *Service, answers map[string]string) *domain.Session {
	t.Helper()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	req := &domain.SubmitAssessmentRequest{
		AgeGroup: "15~24歲",
		Gender:   "女",
		Answers:  answers,
	}
	if _, err := svc.SubmitAssessment(ctx, session.SessionID, req); err != nil {
		t.Fatalf("SubmitAssessment failed: %v", err)
	}

	got, err := svc.GetSession(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	return got
}

func completeAnswers(overrides map[string]string) domain.Answers {
	answers := domain.Answers{
		"sleep":     "完全沒有",
		"anxiety":   "完全沒有",
		"mood":      "完全沒有",
		"selfworth": "完全沒有",
		"suicide":   "完全沒有",
	}
	for id, label := range overrides {
		answers[id] = label
	}
	return answers
}

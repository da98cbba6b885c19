package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailResult(t *testing.T) {
	svc, _, sink := newTestService(t)
	ctx := context.Background()

	session := newScoredSession(t, svc, completeAnswers(map[string]string{
		"sleep":   "輕微",
		"anxiety": "輕微",
	}))
	sink.Messages = nil

	err := svc.EmailResult(ctx, session.SessionID, "user@gmail.com")
	assert.NoError(t, err)
	if len(sink.Messages) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(sink.Messages))
	}
	sent := sink.Messages[0]
	assert.Equal(t, "user@gmail.com", sent.To)
	assert.Equal(t, "心理健康評估結果", sent.Subject)
	assert.Contains(t, sent.Body, "總分：2")
	assert.Contains(t, sent.Body, "年齡範圍：15~24歲")
	assert.Contains(t, sent.Body, "僅供輔助用途")
}

func TestEmailResultInvalidRecipient(t *testing.T) {
	svc, _, sink := newTestService(t)
	ctx := context.Background()

	session := newScoredSession(t, svc, completeAnswers(nil))
	sink.Messages = nil

	for _, recipient := range []string{"", "not-an-address", "user@outlook.com", "user@gmail.com extra words"} {
		err := svc.EmailResult(ctx, session.SessionID, recipient)
		assert.ErrorIs(t, err, ErrInvalidRecipient, "recipient %q", recipient)
	}
	// Validation failures never reach the sink.
	assert.Empty(t, sink.Messages)
}

func TestEmailResultRequiresResult(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	err = svc.EmailResult(ctx, session.SessionID, "user@gmail.com")
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestEmailCounselorOptIn(t *testing.T) {
	svc, _, sink := newTestService(t)
	ctx := context.Background()

	session := newScoredSession(t, svc, completeAnswers(map[string]string{
		"mood": "厲害",
	}))
	sink.Messages = nil

	err := svc.EmailCounselor(ctx, session.SessionID, "teacher@gmail.com")
	assert.NoError(t, err)
	if len(sink.Messages) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(sink.Messages))
	}
	assert.Contains(t, sink.Messages[0].Subject, "需要關注")
	assert.Contains(t, sink.Messages[0].Body, "自殺想法評分")
}

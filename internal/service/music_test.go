package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendMusic(t *testing.T) {
	svc, mockLLM, _ := newTestService(t)
	mockLLM.Reply = "1. 歌名 - 歌手"
	ctx := context.Background()

	session := newScoredSession(t, svc, completeAnswers(map[string]string{
		"sleep": "輕微",
	}))

	resp, err := svc.RecommendMusic(ctx, session.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, "1. 歌名 - 歌手", resp.Recommendations)

	req := mockLLM.Requests[len(mockLLM.Requests)-1]
	assert.Equal(t, "gpt-4", req.Model)
	assert.Equal(t, musicSystemPrompt, req.Messages[0].Content)
	assert.Contains(t, req.Messages[1].Content, "15~24歲")
}

// The crisis route suppresses music recommendation entirely.
func TestRecommendMusicCrisisRejected(t *testing.T) {
	svc, mockLLM, _ := newTestService(t)
	ctx := context.Background()

	session := newScoredSession(t, svc, completeAnswers(map[string]string{
		"suicide": "中等程度",
	}))

	calls := len(mockLLM.Requests)
	_, err := svc.RecommendMusic(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrCrisisRoute)
	assert.Equal(t, calls, len(mockLLM.Requests))
}

func TestRecommendMusicRequiresResult(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	_, err = svc.RecommendMusic(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrNoResult)
}

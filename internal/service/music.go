package service

import (
	"context"
	"fmt"

	"github.com/Zio20687/mental-health-ai-app/internal/adapter/llm"
	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

const musicSystemPrompt = "你是一位音樂推薦專家及心情輔導專家，請以繁體中文回答。"

// RecommendMusic asks the chat backend for songs matching the user's state.
// Only available outside the crisis route; a crisis result must surface
// resources instead.
func (s *Service) RecommendMusic(ctx context.Context, sessionID string) (*domain.MusicResponse, error) {
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
	if crisis {
		return nil, ErrCrisisRoute
	}

	prompt := fmt.Sprintf("請根據%s的情緒狀態、%s的年齡範圍與%s的性別，以繁體中文推薦 5 首適合的中文歌曲，並附上歌手名稱。",
		session.Result.Recommendation, session.Demographics.AgeGroup, session.Demographics.Gender)

	resp, err := s.llm.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model: s.cfg.MusicModel,
		Messages: []llm.ChatMessage{
			{Role: string(domain.RoleSystem), Content: musicSystemPrompt},
			{Role: string(domain.RoleUser), Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("music recommendation failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return nil, fmt.Errorf("music recommendation returned no content")
	}

	return &domain.MusicResponse{Recommendations: resp.Choices[0].Message.Content}, nil
}

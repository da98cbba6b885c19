package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zio20687/mental-health-ai-app/internal/adapter/llm"
	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

// DeltaFunc receives streamed reply fragments as they arrive. May be nil.
type DeltaFunc func(text string) error

// SendChatMessage runs one user chat turn: seed the auto-intro exchange when
// due, append the user message, stream a completion, and append the reply as
// one message only after the stream finished cleanly. Returns the transcript
// rows appended by the turn, in order.
func (s *Service) SendChatMessage(ctx context.Context, sessionID, content string, onDelta DeltaFunc) ([]domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	var appended []*domain.Message

	intro, err := s.seedAutoIntro(ctx, session)
	if err != nil {
		return nil, err
	}
	appended = append(appended, intro...)

	userMsg := &domain.Message{
		MessageID: uuid.NewString(),
		Role:      domain.RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendMessages(ctx, sessionID, []*domain.Message{userMsg}); err != nil {
		return nil, fmt.Errorf("failed to append user message: %w", err)
	}
	appended = append(appended, userMsg)

	history, err := s.store.GetRecentMessages(ctx, sessionID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	req := &llm.ChatCompletionRequest{
		Model:    s.cfg.ChatModel,
		Messages: completionMessages(session, history),
	}

	// The stream is finite and not restartable. Accumulate to completion and
	// only then append, so a failed call leaves no partial assistant message.
	var reply strings.Builder
	_, err = s.llm.CreateChatCompletionStream(ctx, req, func(chunk *llm.StreamChunk) error {
		for _, choice := range chunk.Choices {
			if choice.Delta == nil || choice.Delta.Content == "" {
				continue
			}
			reply.WriteString(choice.Delta.Content)
			if onDelta != nil {
				if err := onDelta(choice.Delta.Content); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("chat completion failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	assistantMsg := &domain.Message{
		MessageID: uuid.NewString(),
		Role:      domain.RoleAssistant,
		Content:   reply.String(),
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendMessages(ctx, sessionID, []*domain.Message{assistantMsg}); err != nil {
		return nil, fmt.Errorf("failed to append assistant message: %w", err)
	}
	appended = append(appended, assistantMsg)

	out := make([]domain.Message, len(appended))
	for i, m := range appended {
		out[i] = *m
	}
	return out, nil
}

// seedAutoIntro appends the assessment-summary exchange exactly once per
// result lifetime. Both the session flag and the transcript marker guard
// re-entry; no result means no seeding.
func (s *Service) seedAutoIntro(ctx context.Context, session *domain.Session) ([]*domain.Message, error) {
	if !session.Scored() || session.AutoIntroSent {
		return nil, nil
	}
	hasIntro, err := s.store.HasAutoIntro(ctx, session.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check transcript: %w", err)
	}
	if hasIntro {
		session.AutoIntroSent = true
		if err := s.store.UpdateSession(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		return nil, nil
	}

	pair := buildAutoIntroExchange(session, time.Now())
	if err := s.store.AppendMessages(ctx, session.SessionID, pair); err != nil {
		return nil, fmt.Errorf("failed to seed auto intro: %w", err)
	}
	session.AutoIntroSent = true
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return pair, nil
}

// completionMessages frames the transcript with the system context. The
// context is per-call framing, never a stored transcript row.
func completionMessages(session *domain.Session, history []domain.Message) []llm.ChatMessage {
	messages := make([]llm.ChatMessage, 0, len(history)+1)
	messages = append(messages, llm.ChatMessage{
		Role:    string(domain.RoleSystem),
		Content: BuildSystemContext(session),
	})
	for _, m := range history {
		messages = append(messages, llm.ChatMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return messages
}

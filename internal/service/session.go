package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

// CreateSession starts a new, empty session.
func (s *Service) CreateSession(ctx context.Context) (*domain.Session, error) {
	session := domain.NewSession(uuid.NewString(), time.Now())
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.logger.Info("session created", zap.String("session_id", session.SessionID))
	return session, nil
}

// GetSession returns the current session state.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetTranscript returns the session's transcript in append order.
func (s *Service) GetTranscript(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if limit <= 0 || limit > s.cfg.HistoryLimit {
		limit = s.cfg.HistoryLimit
	}
	return s.store.GetMessages(ctx, sessionID, limit)
}

// Reset restores the session to its freshly created state: sentinel answers
// and demographics, no result, empty transcript, both one-shot flags false.
// The store applies it in one transaction.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if err := s.store.ResetSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	s.logger.Info("session reset", zap.String("session_id", sessionID))
	return nil
}

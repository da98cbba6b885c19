// Package repository defines the session storage interface and its SQLite
// implementation. Storage is session-scoped only: a reset removes every row
// belonging to the session in one transaction.
package repository

import (
	"context"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

// Store defines the interface for session persistence.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error

	// ResetSession restores the session to its freshly created state and
	// deletes its transcript, atomically.
	ResetSession(ctx context.Context, sessionID string) error

	// Transcript operations. AppendMessages assigns consecutive sequence
	// numbers inside one transaction, preserving append order.
	AppendMessages(ctx context.Context, sessionID string, messages []*domain.Message) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)

	// GetRecentMessages returns the newest limit entries, still in append
	// order. This is the completion-context window: it must always contain
	// the latest turn.
	GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)
	HasAutoIntro(ctx context.Context, sessionID string) (bool, error)

	Close() error
}

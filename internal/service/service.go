// Package service implements the triage flow: scoring, risk classification,
// escalation, chat-context construction and session lifecycle.
package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Zio20687/mental-health-ai-app/internal/adapter/llm"
	"github.com/Zio20687/mental-health-ai-app/internal/adapter/mail"
	"github.com/Zio20687/mental-health-ai-app/internal/config"
	"github.com/Zio20687/mental-health-ai-app/internal/repository"
	"github.com/Zio20687/mental-health-ai-app/policy"
)

// Session-local error conditions. All are recoverable by retrying the
// triggering action; none are fatal to the process.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoResult         = errors.New("no assessment result yet")
	ErrCrisisRoute      = errors.New("crisis route active")
	ErrInvalidRecipient = errors.New("invalid recipient address")
	ErrEmptyMessage     = errors.New("empty chat message")
)

// Service coordinates the assessment and chat flows.
type Service struct {
	store  repository.Store
	llm    llm.LLMClient
	sink   mail.Sink
	policy *policy.Engine
	cfg    *config.Config
	logger *zap.Logger
}

// New creates the service.
func New(store repository.Store, llmClient llm.LLMClient, sink mail.Sink, policyEngine *policy.Engine, cfg *config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		llm:    llmClient,
		sink:   sink,
		policy: policyEngine,
		cfg:    cfg,
		logger: logger,
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Zio20687/mental-health-ai-app/internal/adapter/llm"
	"github.com/Zio20687/mental-health-ai-app/internal/adapter/mail"
	"github.com/Zio20687/mental-health-ai-app/internal/config"
	"github.com/Zio20687/mental-health-ai-app/internal/logger"
	"github.com/Zio20687/mental-health-ai-app/internal/repository"
	"github.com/Zio20687/mental-health-ai-app/internal/service"
	handler "github.com/Zio20687/mental-health-ai-app/internal/transport/http"
	"github.com/Zio20687/mental-health-ai-app/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting triage service",
		zap.Int("http_port", cfg.HTTPPort),
		zap.String("database", cfg.DatabaseURL),
		zap.String("chat_model", cfg.ChatModel))

	// Initialize store
	db, err := repository.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to initialize store", zap.Error(err))
	}
	defer db.Close()

	// Initialize LLM client
	llmClient := llm.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMOrg, cfg.LLMTimeout)

	// Initialize notification sink
	sink := mail.NewSMTPSink(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromAddress)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy())
	if err != nil {
		log.Fatal("failed to initialize policy engine", zap.Error(err))
	}

	// Initialize service and server
	svc := service.New(db, llmClient, sink, policyEngine, cfg, log)
	server := handler.NewServer(svc)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	log.Info("triage API started", zap.Int("port", cfg.HTTPPort))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down triage service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server gracefully", zap.Error(err))
	}

	log.Info("triage service stopped")
}

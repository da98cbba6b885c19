// Package config provides configuration for the triage service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Chat completion backend (OpenAI-compatible)
	LLMBaseURL   string
	LLMAPIKey    string
	LLMOrg       string
	ChatModel    string
	MusicModel   string
	LLMTimeout   time.Duration
	HistoryLimit int

	// Notification (SMTP)
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
	FromAddress     string
	CounselorEmail  string
	RecipientDomain string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:     getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:  getEnv("DATABASE_URL", "file:triage.db?cache=shared&mode=rwc"),
		LLMBaseURL:   getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:    getEnv("LLM_API_KEY", ""),
		LLMOrg:       getEnv("LLM_ORG", ""),
		ChatModel:    getEnv("CHAT_MODEL", "gpt-4o"),
		MusicModel:   getEnv("MUSIC_MODEL", "gpt-4"),
		LLMTimeout:   time.Duration(getEnvInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		HistoryLimit: getEnvInt("HISTORY_LIMIT", 50),

		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnvInt("SMTP_PORT", 465),
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		FromAddress:     getEnv("FROM_ADDRESS", ""),
		CounselorEmail:  getEnv("COUNSELOR_EMAIL", ""),
		RecipientDomain: getEnv("RECIPIENT_DOMAIN", "gmail.com"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
	if cfg.FromAddress == "" {
		cfg.FromAddress = cfg.SMTPUser
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

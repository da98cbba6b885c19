package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvTriageMode is the environment variable name for mode selection.
	EnvTriageMode = "TRIAGE_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewLLMClient creates an LLM client based on the TRIAGE_MODE environment
// variable. If TRIAGE_MODE=MOCK, returns a MockClient; otherwise a real
// Client.
func NewLLMClient(baseURL, apiKey, org string, timeout time.Duration) LLMClient {
	if os.Getenv(EnvTriageMode) == ModeMock {
		log.Println("TRIAGE_MODE=MOCK detected, using mock LLM client")
		return NewMockClient()
	}

	return NewClient(baseURL, apiKey, org, timeout)
}

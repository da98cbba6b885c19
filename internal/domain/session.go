package domain

import "time"

// Role of a chat message author.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Session is the state container for one user's triage flow. Exclusively
// owned by that user; nothing in it outlives a reset.
type Session struct {
	SessionID    string            `json:"session_id"`
	CreatedAt    time.Time         `json:"created_at"`
	Demographics Demographics      `json:"demographics"`
	Answers      Answers           `json:"answers"`
	Result       *AssessmentResult `json:"result,omitempty"`

	// One-shot flags, scoped to the current Result. Both drop back to false
	// whenever a new result is computed and on reset.
	AutoIntroSent     bool `json:"auto_intro_sent"`
	NotifiedForResult bool `json:"notified_for_result"`
}

// NewSession returns an empty session with sentinel answers and demographics.
func NewSession(sessionID string, now time.Time) *Session {
	return &Session{
		SessionID:    sessionID,
		CreatedAt:    now,
		Demographics: NewDemographics(),
		Answers:      NewAnswers(),
	}
}

// Scored reports whether the session holds a computed result.
func (s *Session) Scored() bool {
	return s.Result != nil
}

// Message is a single transcript entry. The transcript is append-only and
// strictly ordered by Seq within a session.
type Message struct {
	MessageID string    `json:"message_id"`
	SessionID string    `json:"session_id"`
	Seq       int64     `json:"seq"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	AutoIntro bool      `json:"auto_intro,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

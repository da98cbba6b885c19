package domain

// SubmitAssessmentRequest carries a full questionnaire submission.
type SubmitAssessmentRequest struct {
	AgeGroup string  `json:"age_group"`
	Gender   string  `json:"gender"`
	Answers  Answers `json:"answers"`
}

// SubmitAssessmentResponse returns the computed result. NotifyWarning is set
// when the counselor escalation was due but the notification sink failed;
// the result itself is unaffected.
type SubmitAssessmentResponse struct {
	Result        *AssessmentResult `json:"result"`
	Escalated     bool              `json:"escalated"`
	NotifyWarning string            `json:"notify_warning,omitempty"`
}

// RouteResponse tells the client which support path applies to the current
// result: crisis resources, or the music recommendation offer.
type RouteResponse struct {
	Crisis    bool   `json:"crisis"`
	Resources string `json:"resources,omitempty"`
}

// ChatRequest is one user chat turn.
type ChatRequest struct {
	Content string `json:"content"`
}

// MusicResponse carries the recommendation text for the non-crisis route.
type MusicResponse struct {
	Recommendations string `json:"recommendations"`
}

// EmailRequest asks for the assessment result to be mailed.
type EmailRequest struct {
	Recipient string `json:"recipient"`
}

package domain

// ChatSSEEvent names for the chat stream.
const (
	ChatEventDelta = "delta"
	ChatEventDone  = "done"
	ChatEventError = "error"
)

// DeltaEventData is the data for a delta SSE event.
type DeltaEventData struct {
	Text string `json:"text"`
}

// DoneEventData closes a chat stream. Messages carries the transcript rows
// appended by the turn (auto-intro pair, user turn, assistant reply).
type DoneEventData struct {
	Messages []Message `json:"messages"`
}

// ErrorEventData is the data for an error SSE event.
type ErrorEventData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

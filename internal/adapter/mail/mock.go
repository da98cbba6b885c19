package mail

// Sent records one delivered message.
type Sent struct {
	To      string
	Subject string
	Body    string
}

// MockSink is a Sink implementation for testing.
type MockSink struct {
	// Err, when set, fails every Send.
	Err error
	// Messages records every successful Send in order.
	Messages []Sent
}

var _ Sink = (*MockSink)(nil)

// NewMockSink creates a new mock sink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// Send records the message or fails with Err.
func (m *MockSink) Send(to, subject, body string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, Sent{To: to, Subject: subject, Body: body})
	return nil
}

// Package mail provides the outbound notification sink.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sink delivers a single outbound message. Implementations must not retry;
// the caller decides how a failure is surfaced.
type Sink interface {
	Send(to, subject, body string) error
}

// SMTPSink sends mail over SMTP.
type SMTPSink struct {
	dialer *gomail.Dialer
	from   string
}

var _ Sink = (*SMTPSink)(nil)

// NewSMTPSink creates a sink that sends through the given SMTP server.
func NewSMTPSink(host string, port int, username, password, from string) *SMTPSink {
	return &SMTPSink{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers one message. Credentials never appear in the returned error.
func (s *SMTPSink) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

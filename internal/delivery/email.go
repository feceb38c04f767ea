package delivery

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/briefops/intelbrief/internal/model"
)

// mailSender sends one message; injectable for tests.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSink dispatches the report over SMTP.
type EmailSink struct {
	recipient string
	from      string
	sender    mailSender
}

// NewEmailSink creates an email sink from the delivery configuration.
func NewEmailSink(cfg model.DeliveryConfig) *EmailSink {
	from := cfg.SMTP.From
	if from == "" {
		from = cfg.SMTP.Username
	}
	return &EmailSink{
		recipient: cfg.Recipient,
		from:      from,
		sender:    gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
	}
}

// Name implements Sink.
func (s *EmailSink) Name() string { return "email" }

// Deliver sends the report body to the configured recipient.
func (s *EmailSink) Deliver(_ context.Context, title, content string) string {
	if s.recipient == "" {
		return "Email skipped (no recipient configured)."
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.recipient)
	m.SetHeader("Subject", title)
	m.SetBody("text/plain", content)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Sprintf("Failed to send the email: %v", err)
	}

	return fmt.Sprintf("Success! The email has been sent to %s.", s.recipient)
}

package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrNotConfigured is returned when the email provider settings are missing.
var ErrNotConfigured = errors.New("sendgrid settings not configured")

// Message is one transactional email. Delivery is fire-and-forget from the
// caller's perspective; errors propagate back synchronously but committed
// state is never rolled back on a failed send.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridMailer is the production Mailer backed by the SendGrid API.
type SendGridMailer struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridMailer builds a Mailer from the configured API key and sender.
// Missing settings do not fail construction; Send reports ErrNotConfigured.
func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	m := &SendGridMailer{from: from}
	if apiKey != "" {
		m.client = sendgrid.NewSendClient(apiKey)
	}
	return m
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	if m.client == nil || m.from == "" {
		return ErrNotConfigured
	}

	v3 := mail.NewV3Mail()
	v3.SetFrom(mail.NewEmail("", m.from))
	v3.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, to := range msg.To {
		if to != "" {
			p.AddTos(mail.NewEmail("", to))
		}
	}
	v3.AddPersonalizations(p)

	if msg.Text != "" {
		v3.AddContent(mail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		v3.AddContent(mail.NewContent("text/html", msg.HTML))
	}
	if msg.ReplyTo != "" {
		v3.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	resp, err := m.client.SendWithContext(ctx, v3)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

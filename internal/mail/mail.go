package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Message describes an outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers mail to downstream transports. Delivery is best-effort;
// a returned error is surfaced once to the caller and never retried.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer builds a mailer for the given relay host/port and sender.
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{addr: host + ":" + port, auth: auth, from: from}
}

// Send submits the message to the relay.
func (m *SMTPMailer) Send(_ context.Context, message Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", message.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", message.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(message.Body)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{message.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogMailer is a dev/test implementation that writes messages to the logger
// instead of dispatching them.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a logging mailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send writes the message to the structured logger.
func (m *LogMailer) Send(_ context.Context, message Message) error {
	if m == nil || m.logger == nil {
		return nil
	}
	m.logger.Info("mail", "to", message.To, "subject", message.Subject, "body", message.Body)
	return nil
}

// Package mail delivers the account notification emails: welcome, password
// reset code and password changed.
package mail

import (
	"context"
	"log/slog"
)

// Message is a single outgoing email with a plain text body and an
// optional HTML alternative.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers a message or returns why it could not.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no SMTP host is configured. The text body, which carries reset
// codes, is only written at debug level.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.Logger.InfoContext(ctx, "mail not sent, no SMTP host configured",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	m.Logger.DebugContext(ctx, "unsent mail body",
		slog.String("to", msg.To),
		slog.String("body", msg.Text),
	)
	return nil
}

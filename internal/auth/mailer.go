// internal/auth/mailer.go
package auth

import (
	"context"
	"log/slog"
)

// LogMailer writes outgoing mail to the log instead of delivering it.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message.
func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.Info("Outgoing mail", "to", to, "subject", subject, "body", body)
	return nil
}

var _ Mailer = (*LogMailer)(nil)

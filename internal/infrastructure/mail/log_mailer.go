// Package mail delivers password reset mails.
package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fittrack/fittrack/internal/core/ports"
)

// LogMailer writes each mail to the log instead of sending it. It stands in
// for an SMTP relay in development and tests.
type LogMailer struct {
	log     zerolog.Logger
	linkURL string
}

// NewLogMailer returns a mailer that renders reset links against linkURL,
// e.g. "https://app.example.com/reset-password".
func NewLogMailer(log zerolog.Logger, linkURL string) *LogMailer {
	return &LogMailer{log: log, linkURL: linkURL}
}

func (m *LogMailer) SendReset(ctx context.Context, mail ports.ResetMail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.Info().
		Str("to", mail.Email).
		Str("name", mail.Name).
		Str("link", m.linkURL+"?token="+mail.Token).
		Msg("password reset mail")
	return nil
}

// internal/mail/mail.go
//
// Outbound mail. The server only ever sends game invitations, so the
// surface is one Send call; delivery failures are the caller's to log
// and ignore. SMTP settings come from the server configuration, and a
// missing SMTP host degrades to a mailer that just logs the link.

package mail

import (
	"context"

	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"
)

// Mailer delivers one message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// SMTP sends mail through a configured relay.
type SMTP struct {
	host   string
	port   int
	sender string
}

// NewSMTP constructs an SMTP mailer. Sender is the From header, e.g.
// "Scrabble Server <scrabble@example.com>".
func NewSMTP(host string, port int, sender string) *SMTP {
	return &SMTP{host: host, port: port, sender: sender}
}

// Send delivers one message.
func (s *SMTP) Send(ctx context.Context, to, subject, text, html string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.sender); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, text)
	msg.AddAlternativeString(gomail.TypeTextHTML, html)

	client, err := gomail.NewClient(s.host, gomail.WithPort(s.port))
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// Log is the fallback mailer for development: it records what would
// have been sent and succeeds.
type Log struct{}

// Send logs the message instead of delivering it.
func (Log) Send(ctx context.Context, to, subject, text, html string) error {
	log.Info().Str("to", to).Str("subject", subject).Str("text", text).
		Msg("mail delivery disabled, logging instead")
	return nil
}

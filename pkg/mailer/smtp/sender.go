// Package smtp implements mailer.Sender over an SMTP relay.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/dmitrymomot/contactform/pkg/mailer"
)

// Sender delivers email through an SMTP relay using gomail.
type Sender struct {
	dialer *gomail.Dialer
	host   string
}

// New creates an SMTP sender. It fails with mailer.ErrNotConfigured when
// the host or credentials are missing, so callers can distinguish a
// configuration gap from a runtime delivery failure.
func New(cfg Config) (*Sender, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%w: smtp host and credentials are required", mailer.ErrNotConfigured)
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.SSL = cfg.SSL
	if cfg.InsecureSkipVerify {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-in
	}

	return &Sender{dialer: d, host: cfg.Host}, nil
}

// Send implements mailer.Sender. gomail has no context support, so
// cancellation is honored before dialing only; a hung relay blocks just
// this call.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.NewString()

	msg := gomail.NewMessage()
	msg.SetHeader("From", email.From)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)
	msg.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", id, s.host))
	if email.ReplyTo != "" {
		msg.SetHeader("Reply-To", email.ReplyTo)
	}
	msg.SetBody("text/plain", email.Text)
	if email.HTML != "" {
		msg.AddAlternative("text/html", email.HTML)
	}

	if err := s.dialer.DialAndSend(msg); err != nil {
		return nil, fmt.Errorf("smtp: send to %s: %w", s.host, err)
	}

	return &mailer.Receipt{ID: id}, nil
}

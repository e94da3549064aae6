// Package mail sends outbound email over SMTP. The scheduler never calls
// this directly; it enqueues email tasks and the mail worker drains them
// through a Mailer.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"stridehq.app/backend/core/config"
)

// Mailer delivers a single message. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf("From: %s <%s>\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
		"\r\n%s",
		m.cfg.FromName, m.cfg.FromAddr, to, subject, body)

	addr := m.cfg.Host + ":" + m.cfg.Port

	// No credentials means a local relay/mailcatcher; skip AUTH entirely.
	var auth smtp.Auth
	if m.cfg.Authenticated() {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.FromAddr, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}

	slog.DebugContext(ctx, "mail sent", "to", to, "subject", subject)
	return nil
}

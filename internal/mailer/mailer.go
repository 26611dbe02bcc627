// Package mailer is the outbound email collaborator. Delivery failures are
// returned to the caller, never swallowed.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/oguzhanyilmaz/reviewdb/internal/config"
)

// Sender delivers a single message. Implementations must report failures.
type Sender interface {
	Send(subject, body, recipient string) error
}

// SMTPSender delivers over plain SMTP with optional auth.
type SMTPSender struct {
	host string
	port string
	auth smtp.Auth
	from string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &SMTPSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		auth: auth,
		from: cfg.MailFrom,
	}
}

func (s *SMTPSender) Send(subject, body, recipient string) error {
	msg := []byte("From: " + s.from + "\r\n" +
		"To: " + recipient + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	if err := smtp.SendMail(s.host+":"+s.port, s.auth, s.from, []string{recipient}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", recipient, err)
	}
	return nil
}

// LogSender writes the message to the log instead of delivering it. Used in
// development when no SMTP host is configured.
type LogSender struct{}

func (LogSender) Send(subject, body, recipient string) error {
	slog.Info("mail (log sender)", "to", recipient, "subject", subject, "body", body)
	return nil
}

// FromConfig picks SMTP when a host is configured, the log sender otherwise.
func FromConfig(cfg *config.Config) Sender {
	if cfg.SMTPHost == "" {
		return LogSender{}
	}
	return NewSMTPSender(cfg)
}

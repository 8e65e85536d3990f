package email

import (
	"gopkg.in/gomail.v2"

	"lostfound_backend/internal/logger"
)

// Sender delivers outbound mail. The only caller is the legacy mark-found
// path; delivery failure never fails the request.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
}

// SMTPSender sends mail through gomail.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}

// NoopSender is used in development and tests when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) Send(to, subject, htmlBody string) error {
	logger.Debug("email suppressed (no SMTP configured)", "to", to, "subject", subject)
	return nil
}

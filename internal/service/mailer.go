package service

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"skillswap_22520060/internal/config"
)

// Mailer delivers transactional email.
type Mailer interface {
	SendPasswordReset(to, name, resetURL string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.EmailFrom,
	}
}

// SendPasswordReset mails the reset link. The raw token only ever appears
// inside the link, never in logs.
func (m *SMTPMailer) SendPasswordReset(to, name, resetURL string) error {
	if m.host == "" || m.user == "" || m.pass == "" {
		return fmt.Errorf("smtp is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "Skill Swap")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your Skill Swap password")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. Open the link below to choose a new one:\n\n%s\n\nThe link expires shortly. If you did not request this, you can ignore this email.\n",
		name, resetURL,
	))
	msg.AddAlternative("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>We received a request to reset your password. Click the link below to choose a new one:</p><p><a href=%q>Reset password</a></p><p>The link expires shortly. If you did not request this, you can ignore this email.</p>",
		name, resetURL,
	))

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

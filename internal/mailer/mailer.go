package mailer

import (
	"fmt"

	"mediahub/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer dispatches the registration confirmation code. Delivery is
// best-effort; callers decide what to do with a failure.
type Mailer interface {
	SendConfirmationCode(to, username, code string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.FromEmail,
	}
}

func (m *smtpMailer) SendConfirmationCode(to, username, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "MediaHub registration confirmation")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYou registered on MediaHub. Your confirmation code: %s\n",
		username, code,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation code: %w", err)
	}
	return nil
}

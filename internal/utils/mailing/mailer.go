package mailing

import (
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

// Mailer sends notification emails over SMTP. It is constructed once with
// its config and injected where needed.
type Mailer struct {
	config MailConfig
}

func NewMailer(config MailConfig) *Mailer {
	return &Mailer{config: config}
}

func (m *Mailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.config.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		m.config.SMTPPort,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

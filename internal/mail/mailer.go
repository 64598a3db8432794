package mail

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"beautyspa/internal/config"
)

// Mailer delivers customer notifications over SMTP. When no relay is
// configured it only logs the message, so local setups keep working.
type Mailer struct {
	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.cfg.MailEnabled() {
		m.log.Info("mail relay not configured, skipping delivery",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPassword)
	return d.DialAndSend(msg)
}

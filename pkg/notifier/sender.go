package notifier

import (
	"fmt"
	"net/smtp"

	"github.com/RSanjanaS/APP-development-C2G/internal/config"
	"github.com/jordan-wright/email"
	log "github.com/sirupsen/logrus"
)

type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	cfg config.SMTP
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = s.cfg.Sender
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}
	if err := e.Send(addr, auth); err != nil {
		log.Errorf("Error sending mail to %s: %v", to, err)
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

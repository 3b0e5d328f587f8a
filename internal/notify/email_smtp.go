package notify

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"

	"github.com/OrinocoLabs01/lab-scheduler/internal/config"
)

type SMTPSender struct {
	host string
	port int
	user string
	pass string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
	}
}

func (s *SMTPSender) Configured() bool {
	return s != nil && s.host != "" && s.user != ""
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if !s.Configured() {
		return errors.New("smtp not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.user)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)

	// gomail no acepta context; respetamos el timeout del caller a mano
	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

package mailer

import (
	"fmt"

	"scholarship-backend/internal/config"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers a single transactional email. Fire and forget: no queue,
// no retries, a failed send surfaces to the caller immediately.
type Sender interface {
	Send(from, replyTo, subject, body string) error
}

type SMTPSender struct {
	host     string
	port     int
	user     string
	password string
	to       string
}

func NewSMTP(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		to:       cfg.EnquiryTo,
	}
}

func (s *SMTPSender) Send(from, replyTo, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(from, s.user); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(s.to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	if replyTo != "" {
		if err := msg.ReplyTo(replyTo); err != nil {
			return fmt.Errorf("mail reply-to: %w", err)
		}
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.user),
		gomail.WithPassword(s.password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	return client.DialAndSend(msg)
}

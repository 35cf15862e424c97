package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"

	"craftmarket/internal/config"
)

// Mailer sends transactional email. Failures surface to the caller; there is
// no retry or queueing.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTP struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewSMTP(cfg config.Config) *SMTP {
	return &SMTP{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

func (s *SMTP) Send(ctx context.Context, to, subject, body string) error {
	opts := []gomail.Option{gomail.WithPort(s.port)}
	if s.user != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.user),
			gomail.WithPassword(s.password),
		)
	}
	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return err
	}
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return client.DialAndSendWithContext(ctx, msg)
}

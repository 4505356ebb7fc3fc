package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/absrenew/storefront/internal/config"
	"github.com/absrenew/storefront/internal/log"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(c context.Context, msg Message) error
}

// SmtpMailer sends order confirmation mail through the configured relay.
type SmtpMailer struct {
	cfg config.Smtp
}

func NewSmtpMailer(cfg config.Smtp) SmtpMailer {
	return SmtpMailer{cfg: cfg}
}

func (m SmtpMailer) Send(c context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	payload := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + msg.To,
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		msg.Body,
	}, "\r\n")

	err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, []byte(payload))
	if err != nil {
		return fmt.Errorf("failed sending mail to=%s with error=%w", msg.To, err)
	}
	return nil
}

// LogMailer only logs the message. It backs development environments where
// no relay is reachable.
type LogMailer struct{}

func (LogMailer) Send(c context.Context, msg Message) error {
	zerolog.Ctx(c).
		Info().
		Str(log.KeyMailTo, msg.To).
		Str(log.KeyProcess, "sending mail").
		Msgf("mail to=%s subject=%s", msg.To, msg.Subject)
	return nil
}

package infra

import (
	"fmt"
	"net/smtp"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending emails with optional attachments.
// All sends go through a circuit breaker so a dead SMTP server fast-fails
// instead of stalling every informe / registration request.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
	cb       *CircuitBreaker
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		cb:       NewCircuitBreaker("smtp", DefaultCBConfig()),
	}
}

// Send delivers a plain-text email. attachPath may be empty.
func (m *Mailer) Send(to, subject, body, attachPath string) error {
	return m.cb.Execute(func() error {
		e := email.NewEmail()
		e.From = m.from
		e.To = []string{to}
		e.Subject = subject
		e.Text = []byte(body)

		if attachPath != "" {
			if _, err := e.AttachFile(attachPath); err != nil {
				return fmt.Errorf("mailer: attach %s: %w", attachPath, err)
			}
		}

		auth := smtp.PlainAuth("", m.user, m.password, m.host)
		return e.Send(m.addr, auth)
	})
}

// State exposes the circuit breaker state for the health endpoint.
func (m *Mailer) State() CBState { return m.cb.State() }

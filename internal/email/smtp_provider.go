package email

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"ustahub_backend/internal/config"
)

// SMTPProvider delivers mail over plain SMTP with optional auth.
type SMTPProvider struct {
	host      string
	port      int
	auth      smtp.Auth
	fromEmail string
	fromName  string
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	var auth smtp.Auth
	if cfg.Email.SMTPUsername != "" && cfg.Email.SMTPPassword != "" {
		auth = smtp.PlainAuth("", cfg.Email.SMTPUsername, cfg.Email.SMTPPassword, cfg.Email.SMTPHost)
	}

	return &SMTPProvider{
		host:      cfg.Email.SMTPHost,
		port:      cfg.Email.SMTPPort,
		auth:      auth,
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
	}
}

func (p *SMTPProvider) Validate() error {
	if p.host == "" {
		return errors.New("smtp host is not configured")
	}
	if p.fromEmail == "" {
		return errors.New("from email is not configured")
	}
	return nil
}

func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return errors.New("no recipients")
	}

	contentType := "text/plain; charset=UTF-8"
	if email.HTML {
		contentType = "text/html; charset=UTF-8"
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", p.fromName, p.fromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", email.Subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n", contentType)
	msg.WriteString(email.Body)

	addr := fmt.Sprintf("%s:%d", p.host, p.port)
	return smtp.SendMail(addr, p.auth, p.fromEmail, email.To, []byte(msg.String()))
}

func (p *SMTPProvider) SendInvitationReceived(to, customerName string) error {
	return p.Send(&Email{
		To:      []string{to},
		Subject: "You have a new invitation",
		Body:    fmt.Sprintf("%s invited you to work together. Open the app to respond before it expires.", customerName),
	})
}

func (p *SMTPProvider) SendContractOffer(to, jobTitle string) error {
	return p.Send(&Email{
		To:      []string{to},
		Subject: "New contract offer",
		Body:    fmt.Sprintf("You received a contract offer for \"%s\". Review and respond in the app.", jobTitle),
	})
}

func (p *SMTPProvider) SendPasswordReset(to, token string) error {
	return p.Send(&Email{
		To:      []string{to},
		Subject: "Password reset",
		Body:    fmt.Sprintf("Use this code to reset your password: %s", token),
	})
}

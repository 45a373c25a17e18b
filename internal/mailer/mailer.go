// Package mailer sends operator notifications over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/camila/resume-screener/internal/config"
	"github.com/camila/resume-screener/internal/db"
)

// Notifier delivers out-of-band notifications. Callers fire these after
// the HTTP response is sent; a failed notification must never fail the
// request that triggered it.
type Notifier interface {
	ContactReceived(ctx context.Context, contact *db.Contact) error
}

// SMTP implements Notifier over an implicit-TLS SMTP connection.
type SMTP struct {
	cfg *config.SMTPConfig
}

// NewSMTP creates an SMTP notifier.
func NewSMTP(cfg *config.SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

// ContactReceived mails the contact-form submission to the operator.
func (s *SMTP) ContactReceived(ctx context.Context, contact *db.Contact) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	dialer := tls.Dialer{Config: &tls.Config{ServerName: s.cfg.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err := client.Mail(s.cfg.Username); err != nil {
		return fmt.Errorf("smtp MAIL failed: %w", err)
	}
	if err := client.Rcpt(s.cfg.ContactEmail); err != nil {
		return fmt.Errorf("smtp RCPT failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write([]byte(contactMessage(s.cfg, contact))); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

func contactMessage(cfg *config.SMTPConfig, contact *db.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", cfg.Username)
	fmt.Fprintf(&b, "To: %s\r\n", cfg.ContactEmail)
	b.WriteString("Subject: New contact received\r\n")
	b.WriteString("\r\n")
	b.WriteString("A new contact message was received:\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", contact.Name)
	fmt.Fprintf(&b, "Company: %s\r\n", contact.Company)
	fmt.Fprintf(&b, "Email: %s\r\n", contact.Email)
	fmt.Fprintf(&b, "Message: %s\r\n", contact.Message)
	return b.String()
}

// Nop is the Notifier used when outbound mail is not configured.
type Nop struct{}

// ContactReceived does nothing.
func (Nop) ContactReceived(context.Context, *db.Contact) error { return nil }

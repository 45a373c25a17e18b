// Package config provides outbound mail configuration.
package config

import (
	"fmt"
	"os"
)

// SMTPConfig holds credentials for the outbound notification mailer.
// Mail is optional: when SMTP_HOST is unset the server runs with
// notifications disabled.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// ContactEmail receives contact-form notifications.
	ContactEmail string
}

// NewSMTPConfig creates mail configuration from environment variables.
// It reads SMTP_HOST, SMTP_PORT (default: 465), SMTP_USERNAME,
// SMTP_PASSWORD and CONTACT_EMAIL.
func NewSMTPConfig() (*SMTPConfig, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return &SMTPConfig{}, nil
	}

	port, err := envInt("SMTP_PORT", 465)
	if err != nil {
		return nil, err
	}

	cfg := &SMTPConfig{
		Host:         host,
		Port:         port,
		Username:     os.Getenv("SMTP_USERNAME"),
		Password:     os.Getenv("SMTP_PASSWORD"),
		ContactEmail: os.Getenv("CONTACT_EMAIL"),
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Enabled reports whether outbound mail is configured.
func (c *SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// normalize validates the configuration.
func (c *SMTPConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("SMTP_PORT out of range: %d", c.Port)
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD are required when SMTP_HOST is set")
	}
	if c.ContactEmail == "" {
		c.ContactEmail = c.Username
	}
	return nil
}

// Package config provides session token configuration.
package config

import (
	"fmt"
	"os"
)

// SessionConfig holds configuration for validating session tokens issued
// by the external identity provider.
type SessionConfig struct {
	Secret string
}

// NewSessionConfig creates session configuration from environment
// variables. It reads SESSION_JWT_SECRET (required).
func NewSessionConfig() (*SessionConfig, error) {
	secret := os.Getenv("SESSION_JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_JWT_SECRET is required but not set")
	}

	return &SessionConfig{Secret: secret}, nil
}

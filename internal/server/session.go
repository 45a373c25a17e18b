// Package server provides the HTTP REST API for the resume screener.
package server

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/camila/resume-screener/internal/config"
	"github.com/camila/resume-screener/internal/server/middleware"
)

// SessionClaims are the claims of a session token minted by the external
// identity provider. The subject is the provider's user id.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// sessionSubject returns the external user id from the claims.
// This implements the middleware.SubjectGetter interface. It is a separate
// type because jwt.Claims already requires GetSubject() (string, error) on
// SessionClaims via the embedded RegisteredClaims.
type sessionSubject struct {
	claims *SessionClaims
}

func (s sessionSubject) GetSubject() string {
	return s.claims.Subject
}

// SessionService validates session tokens issued by the external identity
// provider. Tokens are not minted here; identity lives outside this
// service.
type SessionService struct {
	config *config.SessionConfig
}

// NewSessionService creates a session service with the given configuration.
func NewSessionService(cfg *config.SessionConfig) *SessionService {
	return &SessionService{config: cfg}
}

// AsTokenValidator returns a TokenValidator adapter for this service, so
// the middleware package does not import server.
func (s *SessionService) AsTokenValidator() middleware.TokenValidator {
	return &sessionValidator{service: s}
}

type sessionValidator struct {
	service *SessionService
}

func (v *sessionValidator) ValidateToken(tokenString string) (middleware.SubjectGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return sessionSubject{claims: claims}, nil
}

// ValidateToken verifies the signature and lifetime of a session token
// and returns its claims.
func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}

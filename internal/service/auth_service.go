package service

import (
	"time"

	"github.com/spec-kit/bug-tracker/internal/auth"
	"github.com/spec-kit/bug-tracker/internal/config"
	apperrors "github.com/spec-kit/bug-tracker/pkg/util"
)

// AuthService issues admin tokens for the optional write-protection mode.
type AuthService struct {
	tokens       *auth.TokenManager
	passwordHash string
}

// NewAuthService hashes the configured admin password and prepares the token
// manager.
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	hash, err := auth.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		tokens:       auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		passwordHash: hash,
	}, nil
}

// Login verifies the admin password and returns a signed token.
func (s *AuthService) Login(password string) (string, time.Time, error) {
	if err := auth.ComparePassword(s.passwordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.tokens.GenerateToken("admin")
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

package auth

import (
	"moapyr/internal/config"
	"moapyr/internal/core/port"
	"time"
)

type authService struct {
	uow       port.UnitOfWork
	validator port.OneTimeCodeValidator
	issuer    port.SessionIssuer
	cfg       config.AuthConfig
	now       func() time.Time
}

// Option customises the auth service
type Option func(*authService)

// WithClock overrides the clock used for code validation and token issuance
func WithClock(now func() time.Time) Option {
	return func(s *authService) {
		s.now = now
	}
}

// NewAuthService creates a new auth service
func NewAuthService(uow port.UnitOfWork, validator port.OneTimeCodeValidator, issuer port.SessionIssuer, cfg config.AuthConfig, opts ...Option) port.AuthService {
	s := &authService{
		uow:       uow,
		validator: validator,
		issuer:    issuer,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

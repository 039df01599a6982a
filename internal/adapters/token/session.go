package token

import (
	"context"
	"fmt"
	"moapyr/internal/core/domain"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SessionManager issues and verifies HS256 admin session tokens
type SessionManager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewSessionManager creates a session manager signing with secret
func NewSessionManager(secret string, issuer string) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// WithClock returns a copy of the manager verifying expiry against now
func (s *SessionManager) WithClock(now func() time.Time) *SessionManager {
	clone := *s
	clone.now = now
	return &clone
}

// Issue signs a token for account valid for domain.SessionLifetime
func (s *SessionManager) Issue(account domain.AdminAccount, issuedAt time.Time) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(domain.SessionLifetime)),
		},
		Username: account.Username,
		Role:     domain.AdminRole,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies a raw session token
func (s *SessionManager) Authenticate(_ context.Context, credential string) (*domain.SessionClaims, error) {
	if credential == "" {
		return nil, domain.ErrUnauthorized
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	if claims.Role != domain.AdminRole {
		return nil, fmt.Errorf("%w: unexpected role %q", domain.ErrInvalidToken, claims.Role)
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domain.ErrInvalidToken)
	}

	return &domain.SessionClaims{
		SubjectID: subject,
		Username:  claims.Username,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

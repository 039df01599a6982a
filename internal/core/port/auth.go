package port

import (
	"context"
	"moapyr/internal/core/domain"
	"time"
)

// AdminRepository is the credential store
type AdminRepository interface {
	Create(ctx context.Context, account domain.AdminAccount) error
	FindByUsername(ctx context.Context, username string) (*domain.AdminAccount, error)
}

// OneTimeCodeValidator generates TOTP secrets and checks submitted codes
type OneTimeCodeValidator interface {
	GenerateSecret(username string) (*domain.Enrollment, error)
	Validate(code string, secret string, at time.Time) (bool, error)
}

// SessionIssuer signs session tokens
type SessionIssuer interface {
	Issue(account domain.AdminAccount, issuedAt time.Time) (string, error)
}

// Authenticator verifies the credential presented on admin requests
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (*domain.SessionClaims, error)
}

// AuthService handles admin enrollment and login
type AuthService interface {
	Register(ctx context.Context, bootstrapSecret string, username string) (*domain.Enrollment, error)
	Login(ctx context.Context, username string, code string) (string, error)
}

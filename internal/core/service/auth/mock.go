package auth

import (
	"context"
	"moapyr/internal/core/domain"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

// NewMockAuthService creates a new MockAuthService
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, bootstrapSecret string, username string) (*domain.Enrollment, error) {
	args := m.Called(ctx, bootstrapSecret, username)
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username string, code string) (string, error) {
	args := m.Called(ctx, username, code)
	return args.String(0), args.Error(1)
}

// MockAuthenticator is a mock implementation of Authenticator
type MockAuthenticator struct {
	mock.Mock
}

// NewMockAuthenticator creates a new MockAuthenticator
func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{}
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, credential string) (*domain.SessionClaims, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(*domain.SessionClaims), args.Error(1)
}

// MockCodeValidator is a mock implementation of OneTimeCodeValidator
type MockCodeValidator struct {
	mock.Mock
}

// NewMockCodeValidator creates a new MockCodeValidator
func NewMockCodeValidator() *MockCodeValidator {
	return &MockCodeValidator{}
}

func (m *MockCodeValidator) GenerateSecret(username string) (*domain.Enrollment, error) {
	args := m.Called(username)
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockCodeValidator) Validate(code string, secret string, at time.Time) (bool, error) {
	args := m.Called(code, secret, at)
	return args.Bool(0), args.Error(1)
}

// MockSessionIssuer is a mock implementation of SessionIssuer
type MockSessionIssuer struct {
	mock.Mock
}

// NewMockSessionIssuer creates a new MockSessionIssuer
func NewMockSessionIssuer() *MockSessionIssuer {
	return &MockSessionIssuer{}
}

func (m *MockSessionIssuer) Issue(account domain.AdminAccount, issuedAt time.Time) (string, error) {
	args := m.Called(account, issuedAt)
	return args.String(0), args.Error(1)
}

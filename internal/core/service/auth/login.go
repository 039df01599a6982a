package auth

import (
	"context"
	"errors"
	"fmt"
	"moapyr/internal/core/domain"
	"strings"
)

func (s *authService) Login(ctx context.Context, username string, code string) (string, error) {

	username = strings.TrimSpace(username)
	code = strings.TrimSpace(code)
	if username == "" || code == "" {
		return "", fmt.Errorf("%w: username and code are required", domain.ErrValidation)
	}

	account, err := s.uow.AdminRepo().FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	now := s.now()
	valid, err := s.validator.Validate(code, account.OneTimeSecret, now)
	if err != nil || !valid {
		return "", domain.ErrInvalidCode
	}

	token, err := s.issuer.Issue(*account, now)
	if err != nil {
		return "", fmt.Errorf("could not issue session token: %w", err)
	}
	return token, nil
}

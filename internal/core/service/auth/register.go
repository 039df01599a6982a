package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"moapyr/internal/core/domain"
	"strings"

	"github.com/google/uuid"
)

func (s *authService) Register(ctx context.Context, bootstrapSecret string, username string) (*domain.Enrollment, error) {

	// an unset bootstrap secret disables enrollment
	if s.cfg.BootstrapSecret == "" ||
		subtle.ConstantTimeCompare([]byte(bootstrapSecret), []byte(s.cfg.BootstrapSecret)) != 1 {
		return nil, domain.ErrUnauthorized
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}

	enrollment, err := s.validator.GenerateSecret(username)
	if err != nil {
		return nil, fmt.Errorf("could not generate one-time secret: %w", err)
	}

	err = s.uow.AdminRepo().Create(ctx, domain.AdminAccount{
		ID:            uuid.New(),
		Username:      username,
		OneTimeSecret: enrollment.Secret,
	})
	if err != nil {
		return nil, err
	}

	return enrollment, nil
}

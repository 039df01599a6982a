package port

import (
	"context"
	"moapyr/internal/core/domain"

	"github.com/google/uuid"
)

// ReviewService is the admin-only review gate
type ReviewService interface {
	ListPending(ctx context.Context) ([]domain.Resource, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*domain.Stats, error)
}

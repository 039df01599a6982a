package review

import (
	"context"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/port"

	"github.com/google/uuid"
)

type reviewService struct {
	uow port.UnitOfWork
}

// NewReviewService creates a new review service
func NewReviewService(uow port.UnitOfWork) port.ReviewService {
	return &reviewService{uow: uow}
}

// ListPending returns finalized uploads awaiting review, oldest first
func (r *reviewService) ListPending(ctx context.Context) ([]domain.Resource, error) {
	return r.uow.ResourceRepo().ListByStatus(ctx, domain.ResourceStatusPending)
}

// Approve publishes a resource. Prior status is not checked.
func (r *reviewService) Approve(ctx context.Context, id uuid.UUID) error {
	return r.uow.ResourceRepo().UpdateStatus(ctx, id, domain.ResourceStatusApproved)
}

// Reject hides a resource. The row and the stored object are kept.
func (r *reviewService) Reject(ctx context.Context, id uuid.UUID) error {
	return r.uow.ResourceRepo().UpdateStatus(ctx, id, domain.ResourceStatusRejected)
}

func (r *reviewService) Stats(ctx context.Context) (*domain.Stats, error) {
	return r.uow.ResourceRepo().Stats(ctx)
}

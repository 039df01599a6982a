package resource

import (
	"context"
	"moapyr/internal/core/domain"

	"github.com/google/uuid"
)

func (s *resourceService) Search(ctx context.Context, query domain.SearchQuery) ([]domain.Resource, error) {
	return s.uow.ResourceRepo().Search(ctx, query.Normalize(), domain.SearchLimit)
}

func (s *resourceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	return s.uow.ResourceRepo().FindByID(ctx, id)
}

func (s *resourceService) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	return s.uow.ResourceRepo().ListTags(ctx)
}

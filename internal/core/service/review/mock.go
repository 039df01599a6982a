package review

import (
	"context"
	"moapyr/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockReviewService is a mock implementation of ReviewService
type MockReviewService struct {
	mock.Mock
}

// NewMockReviewService creates a new MockReviewService
func NewMockReviewService() *MockReviewService {
	return &MockReviewService{}
}

func (m *MockReviewService) ListPending(ctx context.Context) ([]domain.Resource, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockReviewService) Approve(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewService) Reject(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewService) Stats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(*domain.Stats), args.Error(1)
}

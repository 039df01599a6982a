package resource

import (
	"context"
	"moapyr/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockResourceService is a mock implementation of ResourceService
type MockResourceService struct {
	mock.Mock
}

// NewMockResourceService creates a new MockResourceService
func NewMockResourceService() *MockResourceService {
	return &MockResourceService{}
}

func (m *MockResourceService) InitUpload(ctx context.Context, input domain.InitUploadInput) (*domain.UploadTicket, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(*domain.UploadTicket), args.Error(1)
}

func (m *MockResourceService) FinalizeUpload(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResourceService) FinalizePendingUpload(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResourceService) Search(ctx context.Context, query domain.SearchQuery) ([]domain.Resource, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockResourceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Resource), args.Error(1)
}

func (m *MockResourceService) RecordDownload(ctx context.Context, id uuid.UUID) (*domain.Handoff, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Handoff), args.Error(1)
}

func (m *MockResourceService) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TagCount), args.Error(1)
}

package storage

import (
	"context"
	"moapyr/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) UploadHandoff(ctx context.Context, fileKey string, size int64) (*domain.Handoff, error) {
	args := m.Called(ctx, fileKey, size)
	return args.Get(0).(*domain.Handoff), args.Error(1)
}

func (m *MockStorage) DownloadHandoff(ctx context.Context, fileKey string) (*domain.Handoff, error) {
	args := m.Called(ctx, fileKey)
	return args.Get(0).(*domain.Handoff), args.Error(1)
}

func (m *MockStorage) ObjectExists(ctx context.Context, fileKey string) (bool, error) {
	args := m.Called(ctx, fileKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) DeleteObject(ctx context.Context, fileKey string) error {
	args := m.Called(ctx, fileKey)
	return args.Error(0)
}

package repository

import (
	"context"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockResourceRepository struct {
	mock.Mock
}

func NewMockResourceRepository() *MockResourceRepository {
	return &MockResourceRepository{}
}

func (m *MockResourceRepository) Create(ctx context.Context, resource domain.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ResourceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockResourceRepository) AdvanceStatus(ctx context.Context, id uuid.UUID, from, to domain.ResourceStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockResourceRepository) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResourceRepository) Search(ctx context.Context, query domain.SearchQuery, limit int) ([]domain.Resource, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) ListByStatus(ctx context.Context, status domain.ResourceStatus) ([]domain.Resource, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TagCount), args.Error(1)
}

func (m *MockResourceRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *MockResourceRepository) FindAbandoned(ctx context.Context, createdBefore time.Time) ([]domain.Resource, error) {
	args := m.Called(ctx, createdBefore)
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDownloadEventRepository struct {
	mock.Mock
}

func (m *MockDownloadEventRepository) Append(ctx context.Context, resourceID uuid.UUID, eventType string) error {
	args := m.Called(ctx, resourceID, eventType)
	return args.Error(0)
}

func (m *MockDownloadEventRepository) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]domain.DownloadEvent, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]domain.DownloadEvent), args.Error(1)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, account domain.AdminAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAdminRepository) FindByUsername(ctx context.Context, username string) (*domain.AdminAccount, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(*domain.AdminAccount), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	resourceRepo      *MockResourceRepository
	downloadEventRepo *MockDownloadEventRepository
	adminRepo         *MockAdminRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		resourceRepo:      &MockResourceRepository{},
		downloadEventRepo: &MockDownloadEventRepository{},
		adminRepo:         &MockAdminRepository{},
	}
}

func (m *MockUnitOfWork) ResourceRepo() port.ResourceRepository {
	return m.resourceRepo
}

func (m *MockUnitOfWork) DownloadEventRepo() port.DownloadEventRepository {
	return m.downloadEventRepo
}

func (m *MockUnitOfWork) AdminRepo() port.AdminRepository {
	return m.adminRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetResourceRepoMock() *MockResourceRepository {
	return m.resourceRepo
}

func (m *MockUnitOfWork) GetDownloadEventRepoMock() *MockDownloadEventRepository {
	return m.downloadEventRepo
}

func (m *MockUnitOfWork) GetAdminRepoMock() *MockAdminRepository {
	return m.adminRepo
}

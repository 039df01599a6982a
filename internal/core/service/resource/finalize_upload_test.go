package resource_test

import (
	"context"
	"moapyr/internal/adapters/repository"
	"moapyr/internal/adapters/storage"
	"moapyr/internal/config"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/service/resource"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceService_FinalizeUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("object present", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		mockStorage := storage.NewMockStorage()
		service := resource.NewResourceService(mockUow, mockStorage, defaultCfg, discardLogger)
		res := &domain.Resource{ID: uuid.New(), FileKey: "key", Status: domain.ResourceStatusPendingUpload}

		mockUow.GetResourceRepoMock().On("FindByID", ctx, res.ID).Return(res, nil)
		mockStorage.On("ObjectExists", ctx, "key").Return(true, nil)
		mockUow.GetResourceRepoMock().On("UpdateStatus", ctx, res.ID, domain.ResourceStatusPending).Return(nil)

		// Act
		err := service.FinalizeUpload(ctx, res.ID)

		// Assert
		require.NoError(t, err)
		mockUow.GetResourceRepoMock().AssertExpectations(t)
		mockStorage.AssertExpectations(t)
	})

	t.Run("missing object is tolerated", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		mockStorage := storage.NewMockStorage()
		service := resource.NewResourceService(mockUow, mockStorage, defaultCfg, discardLogger)
		res := &domain.Resource{ID: uuid.New(), FileKey: "key"}

		mockUow.GetResourceRepoMock().On("FindByID", ctx, res.ID).Return(res, nil)
		mockStorage.On("ObjectExists", ctx, "key").Return(false, nil)
		mockUow.GetResourceRepoMock().On("UpdateStatus", ctx, res.ID, domain.ResourceStatusPending).Return(nil)

		// Act
		err := service.FinalizeUpload(ctx, res.ID)

		// Assert
		require.NoError(t, err)
		mockUow.GetResourceRepoMock().AssertExpectations(t)
	})

	t.Run("storage error is swallowed", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		mockStorage := storage.NewMockStorage()
		service := resource.NewResourceService(mockUow, mockStorage, config.UploadConfig{StrictFinalize: true}, discardLogger)
		res := &domain.Resource{ID: uuid.New(), FileKey: "key"}

		mockUow.GetResourceRepoMock().On("FindByID", ctx, res.ID).Return(res, nil)
		mockStorage.On("ObjectExists", ctx, "key").Return(false, assert.AnError)
		mockUow.GetResourceRepoMock().On("UpdateStatus", ctx, res.ID, domain.ResourceStatusPending).Return(nil)

		// Act
		err := service.FinalizeUpload(ctx, res.ID)

		// Assert
		require.NoError(t, err)
		mockUow.GetResourceRepoMock().AssertExpectations(t)
	})

	t.Run("re-finalize of an approved resource still moves it to pending", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		mockStorage := storage.NewMockStorage()
		service := resource.NewResourceService(mockUow, mockStorage, defaultCfg, discardLogger)
		res := &domain.Resource{ID: uuid.New(), FileKey: "key", Status: domain.ResourceStatusApproved}

		mockUow.GetResourceRepoMock().On("FindByID", ctx, res.ID).Return(res, nil)
		mockStorage.On("ObjectExists", ctx, "key").Return(true, nil)
		mockUow.GetResourceRepoMock().On("UpdateStatus", ctx, res.ID, domain.ResourceStatusPending).Return(nil)

		// Act
		err := service.FinalizeUpload(ctx, res.ID)

		// Assert
		require.NoError(t, err)
	})

	t.Run("strict mode rejects missing object", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		mockStorage := storage.NewMockStorage()
		service := resource.NewResourceService(mockUow, mockStorage, config.UploadConfig{StrictFinalize: true}, discardLogger)
		res := &domain.Resource{ID: uuid.New(), FileKey: "key"}

		mockUow.GetResourceRepoMock().On("FindByID", ctx, res.ID).Return(res, nil)
		mockStorage.On("ObjectExists", ctx, "key").Return(false, nil)

		// Act
		err := service.FinalizeUpload(ctx, res.ID)

		// Assert
		assert.ErrorIs(t, err, domain.ErrObjectMissing)
		mockUow.GetResourceRepoMock().AssertNotCalled(t, "UpdateStatus", ctx, res.ID, domain.ResourceStatusPending)
	})

	t.Run("not found", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		mockStorage := storage.NewMockStorage()
		service := resource.NewResourceService(mockUow, mockStorage, defaultCfg, discardLogger)
		id := uuid.New()

		mockUow.GetResourceRepoMock().On("FindByID", ctx, id).Return((*domain.Resource)(nil), domain.ErrResourceNotFound)

		// Act
		err := service.FinalizeUpload(ctx, id)

		// Assert
		assert.ErrorIs(t, err, domain.ErrResourceNotFound)
		mockStorage.AssertNotCalled(t, "ObjectExists", ctx, "key")
	})
}

func TestResourceService_FinalizePendingUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("pending upload advances", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		mockStorage := storage.NewMockStorage()
		service := resource.NewResourceService(mockUow, mockStorage, defaultCfg, discardLogger)
		res := &domain.Resource{ID: uuid.New(), FileKey: "key", Status: domain.ResourceStatusPendingUpload}

		mockUow.GetResourceRepoMock().On("FindByID", ctx, res.ID).Return(res, nil)
		mockStorage.On("ObjectExists", ctx, "key").Return(true, nil)
		mockUow.GetResourceRepoMock().
			On("AdvanceStatus", ctx, res.ID, domain.ResourceStatusPendingUpload, domain.ResourceStatusPending).
			Return(true, nil)

		// Act
		err := service.FinalizePendingUpload(ctx, res.ID)

		// Assert
		require.NoError(t, err)
		mockUow.GetResourceRepoMock().AssertExpectations(t)
	})

	t.Run("approved resource is left alone", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		mockStorage := storage.NewMockStorage()
		service := resource.NewResourceService(mockUow, mockStorage, defaultCfg, discardLogger)
		res := &domain.Resource{ID: uuid.New(), FileKey: "key", Status: domain.ResourceStatusApproved}

		mockUow.GetResourceRepoMock().On("FindByID", ctx, res.ID).Return(res, nil)

		// Act
		err := service.FinalizePendingUpload(ctx, res.ID)

		// Assert
		require.NoError(t, err)
		mockStorage.AssertNotCalled(t, "ObjectExists", ctx, "key")
		mockUow.GetResourceRepoMock().AssertNotCalled(t, "UpdateStatus", ctx, res.ID, domain.ResourceStatusPending)
		mockUow.GetResourceRepoMock().AssertNotCalled(t, "AdvanceStatus", ctx, res.ID, domain.ResourceStatusPendingUpload, domain.ResourceStatusPending)
	})

	t.Run("lost race is not an error", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		mockStorage := storage.NewMockStorage()
		service := resource.NewResourceService(mockUow, mockStorage, defaultCfg, discardLogger)
		res := &domain.Resource{ID: uuid.New(), FileKey: "key", Status: domain.ResourceStatusPendingUpload}

		mockUow.GetResourceRepoMock().On("FindByID", ctx, res.ID).Return(res, nil)
		mockStorage.On("ObjectExists", ctx, "key").Return(true, nil)
		mockUow.GetResourceRepoMock().
			On("AdvanceStatus", ctx, res.ID, domain.ResourceStatusPendingUpload, domain.ResourceStatusPending).
			Return(false, nil)

		// Act
		err := service.FinalizePendingUpload(ctx, res.ID)

		// Assert
		require.NoError(t, err)
	})

	t.Run("strict mode rejects missing object", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		mockStorage := storage.NewMockStorage()
		service := resource.NewResourceService(mockUow, mockStorage, config.UploadConfig{StrictFinalize: true}, discardLogger)
		res := &domain.Resource{ID: uuid.New(), FileKey: "key", Status: domain.ResourceStatusPendingUpload}

		mockUow.GetResourceRepoMock().On("FindByID", ctx, res.ID).Return(res, nil)
		mockStorage.On("ObjectExists", ctx, "key").Return(false, nil)

		// Act
		err := service.FinalizePendingUpload(ctx, res.ID)

		// Assert
		assert.ErrorIs(t, err, domain.ErrObjectMissing)
	})
}

package resource

import (
	"context"
	"fmt"
	"moapyr/internal/core/domain"

	"github.com/google/uuid"
)

func (s *resourceService) FinalizeUpload(ctx context.Context, id uuid.UUID) error {

	res, err := s.uow.ResourceRepo().FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.verifyObject(ctx, res); err != nil {
		return err
	}

	if err := s.uow.ResourceRepo().UpdateStatus(ctx, id, domain.ResourceStatusPending); err != nil {
		return fmt.Errorf("could not finalize upload: %w", err)
	}
	return nil
}

// FinalizePendingUpload only moves pending_upload to pending. A resource
// that has already left pending_upload is left untouched.
func (s *resourceService) FinalizePendingUpload(ctx context.Context, id uuid.UUID) error {

	res, err := s.uow.ResourceRepo().FindByID(ctx, id)
	if err != nil {
		return err
	}

	if res.Status != domain.ResourceStatusPendingUpload {
		s.logger.Info("upload already finalized", "resource_id", id, "status", res.Status)
		return nil
	}

	if err := s.verifyObject(ctx, res); err != nil {
		return err
	}

	advanced, err := s.uow.ResourceRepo().AdvanceStatus(ctx, id, domain.ResourceStatusPendingUpload, domain.ResourceStatusPending)
	if err != nil {
		return fmt.Errorf("could not finalize upload: %w", err)
	}
	if !advanced {
		s.logger.Info("upload finalized concurrently", "resource_id", id)
	}
	return nil
}

func (s *resourceService) verifyObject(ctx context.Context, res *domain.Resource) error {
	exists, err := s.fileStorage.ObjectExists(ctx, res.FileKey)
	switch {
	case err != nil:
		s.logger.Warn("could not verify uploaded object", "resource_id", res.ID, "file_key", res.FileKey, "error", err)
	case !exists && s.uploadCfg.StrictFinalize:
		return fmt.Errorf("%w: %s", domain.ErrObjectMissing, res.FileKey)
	case !exists:
		s.logger.Warn("finalizing upload without object in storage", "resource_id", res.ID, "file_key", res.FileKey)
	}
	return nil
}

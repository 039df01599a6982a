package resource

import (
	"context"
	"fmt"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/port"

	"github.com/google/uuid"
)

// RecordDownload counts the download before issuing the handoff, so the counter and
// the event survive a storage failure.
func (s *resourceService) RecordDownload(ctx context.Context, id uuid.UUID) (*domain.Handoff, error) {

	res, err := s.uow.ResourceRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if err := uow.ResourceRepo().IncrementDownloads(ctx, id); err != nil {
			return err
		}
		return uow.DownloadEventRepo().Append(ctx, id, domain.DownloadEventType)
	})
	if txErr != nil {
		return nil, fmt.Errorf("could not record download: %w", txErr)
	}

	handoff, err := s.fileStorage.DownloadHandoff(ctx, res.FileKey)
	if err != nil {
		return nil, fmt.Errorf("could not generate download handoff: %w", err)
	}
	return handoff, nil
}

package resource

import (
	"context"
	"fmt"
	"moapyr/internal/core/domain"
	"strings"

	"github.com/google/uuid"
)

func (s *resourceService) InitUpload(ctx context.Context, input domain.InitUploadInput) (*domain.UploadTicket, error) {

	title := strings.TrimSpace(input.Title)
	fileName := strings.TrimSpace(input.FileName)
	if title == "" || fileName == "" {
		return nil, fmt.Errorf("%w: title and fileName are required", domain.ErrValidation)
	}
	if input.FileSize < 0 {
		return nil, fmt.Errorf("%w: fileSize cannot be negative", domain.ErrValidation)
	}

	id := uuid.New()
	fileKey := domain.FileKeyFor(id, fileName)

	handoff, err := s.fileStorage.UploadHandoff(ctx, fileKey, input.FileSize)
	if err != nil {
		return nil, fmt.Errorf("could not generate upload handoff: %w", err)
	}

	requester := input.RequesterAddress
	if requester == "" {
		requester = "unknown"
	}

	err = s.uow.ResourceRepo().Create(ctx, domain.Resource{
		ID:              id,
		Title:           title,
		Description:     input.Description,
		Tags:            input.Tags,
		UploaderAddress: requester,
		FileKey:         fileKey,
		FileName:        fileName,
		FileSize:        input.FileSize,
		Status:          domain.ResourceStatusPendingUpload,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create resource: %w", err)
	}

	return &domain.UploadTicket{
		ResourceID: id,
		FileKey:    fileKey,
		Handoff:    *handoff,
	}, nil
}

package uploadevent

import (
	"log/slog"
	"moapyr/internal/core/port"
)

type uploadEventService struct {
	resources port.ResourceService
	logger    *slog.Logger
}

// NewUploadEventService creates a handler that finalizes uploads from bucket notifications
func NewUploadEventService(resources port.ResourceService, logger *slog.Logger) port.MessageService {
	return &uploadEventService{
		resources: resources,
		logger:    logger,
	}
}

package cleanup

import (
	"log/slog"
	"moapyr/internal/core/port"
	"time"
)

type cleanupService struct {
	uow         port.UnitOfWork
	fileStorage port.BlobStorage
	ttl         time.Duration
	logger      *slog.Logger
}

// NewCleanupService creates a new cleanup service. Uploads still pending after ttl
// are treated as abandoned.
func NewCleanupService(uow port.UnitOfWork, fileStorage port.BlobStorage, ttl time.Duration, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		uow:         uow,
		fileStorage: fileStorage,
		ttl:         ttl,
		logger:      logger,
	}
}

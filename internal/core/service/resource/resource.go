package resource

import (
	"log/slog"
	"moapyr/internal/config"
	"moapyr/internal/core/port"
)

type resourceService struct {
	uow         port.UnitOfWork
	fileStorage port.BlobStorage
	uploadCfg   config.UploadConfig
	logger      *slog.Logger
}

// NewResourceService creates a new resource service
func NewResourceService(uow port.UnitOfWork, storage port.BlobStorage, cfg config.UploadConfig, logger *slog.Logger) port.ResourceService {
	return &resourceService{uow: uow, fileStorage: storage, uploadCfg: cfg, logger: logger}
}

package main

import (
	"context"
	"log/slog"
	"moapyr/internal/adapters/eventbroker/nats"
	"moapyr/internal/adapters/repository/postgres"
	"moapyr/internal/adapters/storage/minio"
	"moapyr/internal/config"
	"moapyr/internal/core/service/resource"
	"moapyr/internal/core/service/uploadevent"
	"os"
	"os/signal"
	"syscall"
)

// uploadevents finalizes uploads from MinIO bucket notifications published to NATS,
// so clients that never call finalize-upload still reach review.
func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Storage.Mode != config.StorageModeMinio {
		logger.Error("bucket notifications require STORAGE_MODE=minio", "mode", cfg.Storage.Mode)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("db connection established")

	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}
	logger.Info("minio adapter initialized")

	unitOfWork := postgres.NewUnitOfWork(db)
	resourceService := resource.NewResourceService(unitOfWork, minioAdapter, cfg.Upload, logger)
	eventService := uploadevent.NewUploadEventService(resourceService, logger)

	natsConsumer, err := nats.NewNATSConsumer(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to create NATS consumer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := natsConsumer.Close(); err != nil {
			logger.Error("failed to close NATS consumer", "error", err)
		}
	}()
	logger.Info("NATS consumer initialized")

	if err := natsConsumer.EnsureStream(ctx); err != nil {
		logger.Error("failed to ensure NATS stream", "error", err)
		os.Exit(1)
	}

	if err := natsConsumer.Subscribe(ctx, eventService); err != nil {
		logger.Error("failed to subscribe to NATS", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS subscription active", "stream", cfg.NATS.StreamName, "subject", cfg.NATS.Subject)

	<-ctx.Done()
	logger.Info("gracefully shutting down upload events service")

	if err := natsConsumer.Close(); err != nil {
		logger.Error("failed to close NATS consumer during shutdown", "error", err)
	}

	logger.Info("upload events service shutdown complete")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"moapyr/internal/adapters/handlers/http/chi"
	"moapyr/internal/adapters/handlers/http/chi/v1/admin"
	"moapyr/internal/adapters/handlers/http/chi/v1/localbucket"
	resourcev1 "moapyr/internal/adapters/handlers/http/chi/v1/resource"
	"moapyr/internal/adapters/otp"
	"moapyr/internal/adapters/repository/postgres"
	"moapyr/internal/adapters/storage/local"
	"moapyr/internal/adapters/storage/minio"
	"moapyr/internal/adapters/token"
	"moapyr/internal/config"
	"moapyr/internal/core/port"
	"moapyr/internal/core/service/auth"
	"moapyr/internal/core/service/cleanup"
	"moapyr/internal/core/service/resource"
	"moapyr/internal/core/service/review"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

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

	//storage
	storage, bucket, err := initStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init storage", "mode", cfg.Storage.Mode, "error", err)
		os.Exit(1)
	}
	logger.Info("storage initialized", "mode", cfg.Storage.Mode)

	unitOfWork := postgres.NewUnitOfWork(db)
	sessions := token.NewSessionManager(cfg.Auth.SigningSecret, cfg.Auth.Issuer)

	resourceService := resource.NewResourceService(unitOfWork, storage, cfg.Upload, logger)
	reviewService := review.NewReviewService(unitOfWork)
	authService := auth.NewAuthService(unitOfWork, otp.NewValidator(cfg.Auth.Issuer), sessions, cfg.Auth)

	//http
	handlers := chi.Handlers{
		Resource: resourcev1.NewResourceHandlerV1(resourceService, logger),
		Admin:    admin.NewAdminHandlerV1(authService, reviewService, logger),
	}
	if bucket != nil {
		handlers.LocalBucket = localbucket.NewLocalBucketHandlerV1(bucket, logger)
	}

	router := chi.NewRouter(logger, sessions, handlers, cfg.Server, cfg.Env)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	if cfg.Upload.AbandonedTTL > 0 {
		cleanupService := cleanup.NewCleanupService(unitOfWork, storage, cfg.Upload.AbandonedTTL, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			initCleanupTask(ctx, cleanupService, cfg.Upload.CleanupEvery, logger)
		}()
	}

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

// initStorage picks the blob store. The local bucket is also returned so its
// endpoints can be mounted.
func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.BlobStorage, *local.Bucket, error) {
	switch cfg.Storage.Mode {
	case config.StorageModeLocal:
		bucket, err := local.NewBucket(cfg.Local, cfg.Storage, logger)
		if err != nil {
			return nil, nil, err
		}
		return bucket, bucket, nil
	default:
		adapter, err := minio.NewAdapter(ctx, cfg.Minio, cfg.Storage, logger)
		if err != nil {
			return nil, nil, err
		}
		return adapter, nil, nil
	}
}

func initCleanupTask(ctx context.Context, service port.CleanupService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("cleanup task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			removed, err := service.CleanupAbandonedUploads(ctx, time.Now())
			if err != nil {
				logger.Error("failed to cleanup abandoned uploads", "error", err)
			} else {
				logger.Info("cleanup task completed", "removed", removed)
			}
		case <-ctx.Done():
			logger.Info("cleanup task stopped")
			return
		}
	}

}

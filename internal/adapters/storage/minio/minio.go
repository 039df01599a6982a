package minio

import (
	"context"
	"fmt"
	"log/slog"
	"moapyr/internal/config"
	"moapyr/internal/core/domain"
	"net/http"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const uploadContentType = "application/octet-stream"

// Adapter is a port.BlobStorage backed by an S3 compatible MinIO bucket
type Adapter struct {
	client      *minio.Client
	config      config.MinioConfig
	uploadTTL   time.Duration
	downloadTTL time.Duration
	logger      *slog.Logger
}

// NewAdapter connects to MinIO and creates the bucket when it does not exist
func NewAdapter(ctx context.Context, cfg config.MinioConfig, storageCfg config.StorageConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("bucket created", slog.String("bucket", cfg.BucketName))
	}

	return &Adapter{
		client:      client,
		config:      cfg,
		uploadTTL:   storageCfg.UploadHandoffTTL,
		downloadTTL: storageCfg.DownloadHandoffTTL,
		logger:      logger,
	}, nil
}

// UploadHandoff presigns a PUT of exactly size bytes to fileKey
func (a *Adapter) UploadHandoff(ctx context.Context, fileKey string, size int64) (*domain.Handoff, error) {
	requestHeaders := make(http.Header)
	requestHeaders.Set("Content-Type", uploadContentType)
	requestHeaders.Set("Content-Length", strconv.FormatInt(size, 10))

	expiresAt := time.Now().Add(a.uploadTTL)
	presignedURL, err := a.client.PresignHeader(ctx, http.MethodPut, a.config.BucketName, fileKey, a.uploadTTL, nil, requestHeaders)
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed upload URL: %w", err)
	}

	return &domain.Handoff{
		URL:       presignedURL.String(),
		Method:    http.MethodPut,
		Headers:   map[string]string{"Content-Type": uploadContentType},
		ExpiresAt: expiresAt,
	}, nil
}

// DownloadHandoff presigns a GET of fileKey
func (a *Adapter) DownloadHandoff(ctx context.Context, fileKey string) (*domain.Handoff, error) {
	expiresAt := time.Now().Add(a.downloadTTL)
	presignedURL, err := a.client.PresignedGetObject(ctx, a.config.BucketName, fileKey, a.downloadTTL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed download URL: %w", err)
	}

	return &domain.Handoff{
		URL:       presignedURL.String(),
		Method:    http.MethodGet,
		ExpiresAt: expiresAt,
	}, nil
}

// ObjectExists stats fileKey. A missing key is not an error.
func (a *Adapter) ObjectExists(ctx context.Context, fileKey string) (bool, error) {
	_, err := a.client.StatObject(ctx, a.config.BucketName, fileKey, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to get object info: %w", err)
	}
	return true, nil
}

// DeleteObject deletes an object from storage
func (a *Adapter) DeleteObject(ctx context.Context, fileKey string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, fileKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("fileKey", fileKey),
		slog.String("bucket", a.config.BucketName))

	return nil
}

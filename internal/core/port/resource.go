package port

import (
	"context"
	"moapyr/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// ResourceRepository is an interface to define resource repository interactions
type ResourceRepository interface {
	Create(ctx context.Context, resource domain.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ResourceStatus) error
	AdvanceStatus(ctx context.Context, id uuid.UUID, from, to domain.ResourceStatus) (bool, error)
	IncrementDownloads(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query domain.SearchQuery, limit int) ([]domain.Resource, error)
	ListByStatus(ctx context.Context, status domain.ResourceStatus) ([]domain.Resource, error)
	ListTags(ctx context.Context) ([]domain.TagCount, error)
	Stats(ctx context.Context) (*domain.Stats, error)
	FindAbandoned(ctx context.Context, createdBefore time.Time) ([]domain.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DownloadEventRepository is an interface to the append-only download log
type DownloadEventRepository interface {
	Append(ctx context.Context, resourceID uuid.UUID, eventType string) error
	ListByResource(ctx context.Context, resourceID uuid.UUID) ([]domain.DownloadEvent, error)
}

// BlobStorage is an interface to define blob storage interactions
type BlobStorage interface {
	UploadHandoff(ctx context.Context, fileKey string, size int64) (*domain.Handoff, error)
	DownloadHandoff(ctx context.Context, fileKey string) (*domain.Handoff, error)
	ObjectExists(ctx context.Context, fileKey string) (bool, error)
	DeleteObject(ctx context.Context, fileKey string) error
}

// ResourceService is an interface to define the public resource service
type ResourceService interface {
	InitUpload(ctx context.Context, input domain.InitUploadInput) (*domain.UploadTicket, error)
	FinalizeUpload(ctx context.Context, id uuid.UUID) error
	FinalizePendingUpload(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.Resource, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	RecordDownload(ctx context.Context, id uuid.UUID) (*domain.Handoff, error)
	ListTags(ctx context.Context) ([]domain.TagCount, error)
}

package port

import (
	"context"
	"time"
)

// CleanupService removes uploads that were initialized but never finalized
type CleanupService interface {
	CleanupAbandonedUploads(ctx context.Context, now time.Time) (int, error)
}

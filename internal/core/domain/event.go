package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DownloadEventType is the event type recorded for issued download handoffs
const DownloadEventType = "download"

// DownloadEvent is an append-only analytics row
type DownloadEvent struct {
	ID         int64
	ResourceID uuid.UUID
	EventType  string
	CreatedAt  time.Time
}

// BucketNotification is the S3-compatible event MinIO publishes for bucket changes
type BucketNotification struct {
	EventName string `json:"EventName"`
	Key       string `json:"Key"`
	Records   []struct {
		EventName string `json:"eventName"`
		S3        struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key  string `json:"key"`
				Size int64  `json:"size"`
				ETag string `json:"eTag"`
			} `json:"object"`
		} `json:"s3"`
		EventTime string `json:"eventTime"`
	} `json:"Records"`
}

// IsObjectCreated reports whether a record event name denotes a new object
func IsObjectCreated(eventName string) bool {
	return strings.HasPrefix(eventName, "s3:ObjectCreated:")
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResourceStatus represents the lifecycle state of a resource
type ResourceStatus string

const (
	ResourceStatusPendingUpload ResourceStatus = "pending_upload"
	ResourceStatusPending       ResourceStatus = "pending"
	ResourceStatusApproved      ResourceStatus = "approved"
	ResourceStatusRejected      ResourceStatus = "rejected"
)

// SearchLimit caps the number of rows returned by a search
const SearchLimit = 50

// Resource represents a shared file and its metadata
type Resource struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Tags            string
	UploaderAddress string
	FileKey         string
	FileName        string
	FileSize        int64
	Status          ResourceStatus
	Downloads       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FileKeyFor derives the storage key of a resource. The id prefix keeps keys unique
// without a lookup.
func FileKeyFor(id uuid.UUID, fileName string) string {
	return id.String() + "-" + fileName
}

// ResourceIDFromFileKey recovers the resource id embedded in a storage key
func ResourceIDFromFileKey(fileKey string) (uuid.UUID, error) {
	const idLen = 36
	if len(fileKey) < idLen {
		return uuid.Nil, ErrResourceNotFound
	}
	id, err := uuid.Parse(fileKey[:idLen])
	if err != nil {
		return uuid.Nil, ErrResourceNotFound
	}
	return id, nil
}

// SearchQuery holds optional public search filters
type SearchQuery struct {
	Query string
	Tag   string
}

// Normalize trims surrounding whitespace from both filters
func (q SearchQuery) Normalize() SearchQuery {
	return SearchQuery{
		Query: strings.TrimSpace(q.Query),
		Tag:   strings.TrimSpace(q.Tag),
	}
}

// InitUploadInput is what a client declares before transferring bytes
type InitUploadInput struct {
	Title            string
	Description      string
	Tags             string
	FileName         string
	FileSize         int64
	RequesterAddress string
}

// UploadTicket is returned by init upload
type UploadTicket struct {
	ResourceID uuid.UUID
	FileKey    string
	Handoff    Handoff
}

// Stats is the admin dashboard summary
type Stats struct {
	Downloads int64
	Resources int64
}

package domain

import "time"

// Handoff is a capability for one delegated I/O operation against the blob store
type Handoff struct {
	URL       string
	Method    string
	Headers   map[string]string
	ExpiresAt time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole is the only role carried by session tokens
const AdminRole = "admin"

// SessionLifetime is the fixed validity of an issued session token
const SessionLifetime = 24 * time.Hour

// AdminAccount represents an administrator enrolled with a TOTP authenticator
type AdminAccount struct {
	ID            uuid.UUID
	Username      string
	OneTimeSecret string
	CreatedAt     time.Time
}

// Enrollment is the result of a successful registration
type Enrollment struct {
	Username        string
	Secret          string
	ProvisioningURI string
}

// SessionClaims is the identity asserted by a verified session token
type SessionClaims struct {
	SubjectID uuid.UUID
	Username  string
	Role      string
	ExpiresAt time.Time
}

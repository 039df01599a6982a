package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is an error thrown when a request is missing required fields or is malformed
var ErrValidation = errors.New("validation failed")

// ErrResourceNotFound is an error thrown when a resource is not found
var ErrResourceNotFound = errors.New("resource not found")

// ErrAdminNotFound is an error thrown when an admin account is not found
var ErrAdminNotFound = errors.New("admin account not found")

// ErrConflict is an error thrown when an entity already exists
var ErrConflict = errors.New("already exists")

// ErrObjectMissing is an error thrown when finalize finds no object behind a file key
var ErrObjectMissing = errors.New("uploaded object not found in storage")

// ErrUnauthorized is an error thrown when a credential is absent, malformed or does not match
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidToken is an error thrown when a session token has a bad signature or is expired
var ErrInvalidToken = errors.New("invalid token")

// ErrInvalidCredentials is the generic login failure
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidCode is an error thrown when a one-time code does not validate.
// It wraps ErrInvalidCredentials so callers cannot tell it apart from an unknown user.
var ErrInvalidCode = fmt.Errorf("%w: one-time code rejected", ErrInvalidCredentials)

// ErrForbidden is an error thrown when a valid capability is presented for another object
var ErrForbidden = errors.New("forbidden")

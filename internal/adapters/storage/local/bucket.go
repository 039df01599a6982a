package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"moapyr/internal/config"
	"moapyr/internal/core/domain"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoutePrefix is where the HTTP layer mounts the bucket endpoints
const RoutePrefix = "/api/resources/local-bucket/"

// Capability methods carried in bucket tokens
const (
	MethodPut = "put"
	MethodGet = "get"
)

type capabilityClaims struct {
	jwt.RegisteredClaims
	Key    string `json:"key"`
	Method string `json:"method"`
	Size   int64  `json:"size,omitempty"`
}

// Capability is a verified bucket token
type Capability struct {
	Key    string
	Method string
	Size   int64
}

// Bucket is a port.BlobStorage keeping objects on the local filesystem. Handoffs
// point back at the API, authorized by short lived signed tokens.
type Bucket struct {
	dir         string
	baseURL     string
	secret      []byte
	uploadTTL   time.Duration
	downloadTTL time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// NewBucket creates the bucket directory if needed
func NewBucket(cfg config.LocalBucketConfig, storageCfg config.StorageConfig, logger *slog.Logger) (*Bucket, error) {
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create bucket directory: %w", err)
	}
	return &Bucket{
		dir:         cfg.Dir,
		baseURL:     strings.TrimRight(cfg.PublicBaseURL, "/"),
		secret:      []byte(cfg.SigningSecret),
		uploadTTL:   storageCfg.UploadHandoffTTL,
		downloadTTL: storageCfg.DownloadHandoffTTL,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// WithClock returns a copy of the bucket using now for token timestamps
func (b *Bucket) WithClock(now func() time.Time) *Bucket {
	clone := *b
	clone.now = now
	return &clone
}

// UploadHandoff issues a single use PUT capability for size bytes at fileKey
func (b *Bucket) UploadHandoff(_ context.Context, fileKey string, size int64) (*domain.Handoff, error) {
	expiresAt := b.now().Add(b.uploadTTL)
	target, err := b.sign(fileKey, MethodPut, size, expiresAt)
	if err != nil {
		return nil, err
	}
	return &domain.Handoff{
		URL:       target,
		Method:    http.MethodPut,
		Headers:   map[string]string{"Content-Type": "application/octet-stream"},
		ExpiresAt: expiresAt,
	}, nil
}

// DownloadHandoff issues a GET capability for fileKey
func (b *Bucket) DownloadHandoff(_ context.Context, fileKey string) (*domain.Handoff, error) {
	expiresAt := b.now().Add(b.downloadTTL)
	target, err := b.sign(fileKey, MethodGet, 0, expiresAt)
	if err != nil {
		return nil, err
	}
	return &domain.Handoff{
		URL:       target,
		Method:    http.MethodGet,
		ExpiresAt: expiresAt,
	}, nil
}

// ObjectExists reports whether fileKey has been written
func (b *Bucket) ObjectExists(_ context.Context, fileKey string) (bool, error) {
	path, err := b.path(fileKey)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

// DeleteObject removes fileKey. A missing object is not an error.
func (b *Bucket) DeleteObject(_ context.Context, fileKey string) error {
	path, err := b.path(fileKey)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	b.logger.Info("object deleted", slog.String("fileKey", fileKey))
	return nil
}

// Verify checks a bucket token and that it grants method
func (b *Bucket) Verify(token string, method string) (*Capability, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	var claims capabilityClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return b.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(b.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if claims.Method != method {
		return nil, fmt.Errorf("%w: token grants %s", domain.ErrForbidden, claims.Method)
	}

	return &Capability{Key: claims.Key, Method: claims.Method, Size: claims.Size}, nil
}

// Write stores exactly size bytes from r at key. An object is written at most once.
func (b *Bucket) Write(key string, size int64, r io.Reader) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("object %s: %w", key, domain.ErrConflict)
	}

	tmp, err := os.CreateTemp(b.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	written, err := io.Copy(tmp, io.LimitReader(r, size+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	if written != size {
		return fmt.Errorf("%w: expected %d bytes, got %d", domain.ErrValidation, size, written)
	}

	// link fails when the target exists, so concurrent writers cannot both win
	if err := os.Link(tmp.Name(), path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("object %s: %w", key, domain.ErrConflict)
		}
		return fmt.Errorf("failed to publish object: %w", err)
	}

	b.logger.Info("object stored", slog.String("fileKey", key), slog.Int64("size", size))
	return nil
}

// Open returns the object at key
func (b *Bucket) Open(key string) (*os.File, error) {
	path, err := b.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("object %s: %w", key, domain.ErrResourceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return f, nil
}

func (b *Bucket) sign(key, method string, size int64, expiresAt time.Time) (string, error) {
	claims := capabilityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(b.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Key:    key,
		Method: method,
		Size:   size,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign bucket token: %w", err)
	}
	return b.baseURL + RoutePrefix + url.PathEscape(key) + "?token=" + url.QueryEscape(token), nil
}

// path maps a key to one flat file name inside the bucket directory
func (b *Bucket) path(key string) (string, error) {
	name := url.PathEscape(key)
	if key == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: invalid object key", domain.ErrValidation)
	}
	return filepath.Join(b.dir, name), nil
}

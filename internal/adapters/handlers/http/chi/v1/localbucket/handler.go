package localbucket

import (
	"fmt"
	"io"
	"log/slog"
	"moapyr/internal/adapters/handlers/http/chi/apierror"
	"moapyr/internal/adapters/storage/local"
	"moapyr/internal/core/domain"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Bucket is the subset of the local bucket served over HTTP
type Bucket interface {
	Verify(token string, method string) (*local.Capability, error)
	Write(key string, size int64, r io.Reader) error
	Open(key string) (*os.File, error)
}

// HandlerV1 serves upload and download handoffs of the local bucket
type HandlerV1 struct {
	bucket Bucket
	logger *slog.Logger
}

// NewLocalBucketHandlerV1 creates HandlerV1
func NewLocalBucketHandlerV1(bucket Bucket, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		bucket: bucket,
		logger: logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Put("/*", h.PutObjectV1)
	router.Get("/*", h.GetObjectV1)

	return router
}

func (h *HandlerV1) PutObjectV1(w http.ResponseWriter, r *http.Request) {
	capability, err := h.authorize(r, local.MethodPut)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	if err := h.bucket.Write(capability.Key, capability.Size, r.Body); err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *HandlerV1) GetObjectV1(w http.ResponseWriter, r *http.Request) {
	capability, err := h.authorize(r, local.MethodGet)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	f, err := h.bucket.Open(capability.Key)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		apierror.Write(w, r, h.logger, fmt.Errorf("failed to stat object: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeContent(w, r, "", info.ModTime(), f)
}

// authorize verifies the token and that it was issued for the requested key
func (h *HandlerV1) authorize(r *http.Request, method string) (*local.Capability, error) {
	capability, err := h.bucket.Verify(r.URL.Query().Get("token"), method)
	if err != nil {
		return nil, err
	}

	key, err := url.PathUnescape(strings.TrimPrefix(r.URL.EscapedPath(), local.RoutePrefix))
	if err != nil || key != capability.Key {
		return nil, fmt.Errorf("%w: token was issued for another object", domain.ErrForbidden)
	}
	return capability, nil
}

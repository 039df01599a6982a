package localbucket_test

import (
	"context"
	"io"
	"log/slog"
	"moapyr/internal/adapters/handlers/http/chi"
	"moapyr/internal/adapters/handlers/http/chi/v1/admin"
	"moapyr/internal/adapters/handlers/http/chi/v1/localbucket"
	resourcev1 "moapyr/internal/adapters/handlers/http/chi/v1/resource"
	"moapyr/internal/adapters/storage/local"
	"moapyr/internal/config"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/service/auth"
	"moapyr/internal/core/service/resource"
	"moapyr/internal/core/service/review"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*local.Bucket, http.Handler) {
	t.Helper()
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bucket, err := local.NewBucket(
		config.LocalBucketConfig{
			Dir:           t.TempDir(),
			PublicBaseURL: "http://localhost:8080",
			SigningSecret: "0123456789abcdef0123456789abcdef",
		},
		config.StorageConfig{Mode: config.StorageModeLocal, UploadHandoffTTL: time.Hour, DownloadHandoffTTL: time.Hour},
		discardLogger,
	)
	require.NoError(t, err)

	router := chi.NewRouter(discardLogger, auth.NewMockAuthenticator(), chi.Handlers{
		Resource:    resourcev1.NewResourceHandlerV1(resource.NewMockResourceService(), discardLogger),
		Admin:       admin.NewAdminHandlerV1(auth.NewMockAuthService(), review.NewMockReviewService(), discardLogger),
		LocalBucket: localbucket.NewLocalBucketHandlerV1(bucket, discardLogger),
	}, config.ServerConfig{}, config.Env{})
	return bucket, router
}

// target strips scheme and host so the handoff URL can be served in process
func target(t *testing.T, handoff *domain.Handoff) string {
	t.Helper()
	u, err := url.Parse(handoff.URL)
	require.NoError(t, err)
	return u.RequestURI()
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestLocalBucket_RoundTrip(t *testing.T) {
	// Arrange
	bucket, router := setup(t)
	ctx := context.Background()
	key := domain.FileKeyFor(uuid.New(), "week 1/notes.txt")

	upload, err := bucket.UploadHandoff(ctx, key, 5)
	require.NoError(t, err)
	download, err := bucket.DownloadHandoff(ctx, key)
	require.NoError(t, err)

	// Act
	putResp := do(router, http.MethodPut, target(t, upload), "hello")
	getResp := do(router, http.MethodGet, target(t, download), "")

	// Assert
	assert.Equal(t, http.StatusOK, putResp.Code)
	assert.Equal(t, http.StatusOK, getResp.Code)
	assert.Equal(t, "hello", getResp.Body.String())
	assert.Equal(t, "application/octet-stream", getResp.Header().Get("Content-Type"))
}

func TestLocalBucket_PutErrors(t *testing.T) {

	t.Run("error - second write", func(t *testing.T) {
		// Arrange
		bucket, router := setup(t)
		key := domain.FileKeyFor(uuid.New(), "a.txt")
		upload, err := bucket.UploadHandoff(context.Background(), key, 3)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, do(router, http.MethodPut, target(t, upload), "abc").Code)

		// Act
		w := do(router, http.MethodPut, target(t, upload), "xyz")

		// Assert
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("error - body does not match declared size", func(t *testing.T) {
		// Arrange
		bucket, router := setup(t)
		key := domain.FileKeyFor(uuid.New(), "a.txt")
		upload, err := bucket.UploadHandoff(context.Background(), key, 3)
		require.NoError(t, err)

		// Act
		w := do(router, http.MethodPut, target(t, upload), "abcdef")

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("error - token issued for another key", func(t *testing.T) {
		// Arrange
		bucket, router := setup(t)
		upload, err := bucket.UploadHandoff(context.Background(), domain.FileKeyFor(uuid.New(), "a.txt"), 3)
		require.NoError(t, err)
		u, err := url.Parse(upload.URL)
		require.NoError(t, err)
		other := local.RoutePrefix + url.PathEscape(domain.FileKeyFor(uuid.New(), "b.txt")) + "?" + u.RawQuery

		// Act
		w := do(router, http.MethodPut, other, "abc")

		// Assert
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("error - download token", func(t *testing.T) {
		// Arrange
		bucket, router := setup(t)
		download, err := bucket.DownloadHandoff(context.Background(), domain.FileKeyFor(uuid.New(), "a.txt"))
		require.NoError(t, err)

		// Act
		w := do(router, http.MethodPut, target(t, download), "abc")

		// Assert
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("error - no token", func(t *testing.T) {
		// Arrange
		_, router := setup(t)

		// Act
		w := do(router, http.MethodPut, local.RoutePrefix+"some-key", "abc")

		// Assert
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLocalBucket_GetMissingObject(t *testing.T) {
	// Arrange
	bucket, router := setup(t)
	download, err := bucket.DownloadHandoff(context.Background(), domain.FileKeyFor(uuid.New(), "never.txt"))
	require.NoError(t, err)

	// Act
	w := do(router, http.MethodGet, target(t, download), "")

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

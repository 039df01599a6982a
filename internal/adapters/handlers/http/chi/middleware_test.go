package chi_test

import (
	"bytes"
	"log/slog"
	"moapyr/internal/adapters/handlers/http/chi"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerMiddleware(t *testing.T) {
	testCases := []struct {
		name      string
		path      string
		status    int
		wantLevel string
		wantEmpty bool
	}{
		{name: "success", path: "/api/resources", status: http.StatusOK, wantLevel: "level=INFO"},
		{name: "client error", path: "/api/admin/stats", status: http.StatusUnauthorized, wantLevel: "level=WARN"},
		{name: "server error", path: "/api/resources", status: http.StatusInternalServerError, wantLevel: "level=ERROR"},
		{name: "health probe", path: "/health", status: http.StatusOK, wantEmpty: true},
		{name: "metrics scrape", path: "/metrics", status: http.StatusOK, wantEmpty: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})

			// Act
			chi.LoggerMiddleware(logger)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))

			// Assert
			if tc.wantEmpty {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tc.wantLevel)
			assert.Contains(t, buf.String(), "path="+tc.path)
		})
	}
}

package chi

import (
	"log/slog"
	"moapyr/internal/adapters/handlers/http/chi/session"
	"moapyr/internal/adapters/handlers/http/chi/v1/admin"
	"moapyr/internal/adapters/handlers/http/chi/v1/localbucket"
	"moapyr/internal/adapters/handlers/http/chi/v1/resource"
	"moapyr/internal/config"
	"moapyr/internal/core/port"
	"moapyr/internal/metrics"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the versioned route handlers. LocalBucket is nil unless the
// local storage mode is enabled.
type Handlers struct {
	Resource    *resource.HandlerV1
	Admin       *admin.HandlerV1
	LocalBucket *localbucket.HandlerV1
}

// NewRouter builds http.Handler with chi
func NewRouter(logger *slog.Logger, authenticator port.Authenticator, handlers Handlers, serverCfg config.ServerConfig, env config.Env) http.Handler {
	r := chi.NewRouter()

	//handle requestID to facilitate debug (X-Request-ID)
	//It fetches from request if exists, or creates it
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(serverCfg, env)))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "MOAPYR API is running")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// object bodies stream through the local bucket, so it is not size or time limited
		if handlers.LocalBucket != nil {
			r.Mount("/resources/local-bucket", handlers.LocalBucket.Routes())
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			r.Use(middleware.RequestSize(1 << 20)) //1mb of JSON
			r.Mount("/resources", handlers.Resource.Routes())
			r.Mount("/admin", handlers.Admin.Routes(session.RequireAdmin(authenticator, logger)))
		})
	})

	return r
}

func corsOptions(serverCfg config.ServerConfig, env config.Env) cors.Options {
	origins := []string{"*"}
	if env.IsProd() {
		origins = serverCfg.CORSAllowedOrigins
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Bootstrap-Secret", "X-Request-ID"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

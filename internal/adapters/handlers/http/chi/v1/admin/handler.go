package admin

import (
	"fmt"
	"log/slog"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/port"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// BootstrapSecretHeader carries the shared secret required to enroll an admin
const BootstrapSecretHeader = "X-Bootstrap-Secret"

// HandlerV1 is the handler for admin routes
type HandlerV1 struct {
	authService   port.AuthService
	reviewService port.ReviewService
	logger        *slog.Logger
}

// NewAdminHandlerV1 creates HandlerV1
func NewAdminHandlerV1(authService port.AuthService, reviewService port.ReviewService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		authService:   authService,
		reviewService: reviewService,
		logger:        logger,
	}
}

// Routes exposes handler routes. requireAdmin guards everything except login and register.
func (h *HandlerV1) Routes(requireAdmin func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Post("/login", h.LoginV1)
	router.Post("/register", h.RegisterV1)

	router.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/pending", h.ListPendingV1)
		r.Post("/approve/{id}", h.ApproveV1)
		r.Post("/reject/{id}", h.RejectV1)
		r.Get("/stats", h.StatsV1)
	})

	return router
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrResourceNotFound, err)
	}
	return id, nil
}

func decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return fmt.Errorf("%w: malformed JSON body", domain.ErrValidation)
	}
	return nil
}

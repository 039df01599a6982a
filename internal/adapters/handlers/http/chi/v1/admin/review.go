package admin

import (
	"context"
	"moapyr/internal/adapters/handlers/http/chi/apierror"
	"moapyr/internal/adapters/handlers/http/chi/session"
	resourcev1 "moapyr/internal/adapters/handlers/http/chi/v1/resource"
	"moapyr/internal/metrics"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// V1StatsResponse is the dashboard summary
type V1StatsResponse struct {
	Downloads int64 `json:"downloads"`
	Resources int64 `json:"resources"`
}

func (h *HandlerV1) ListPendingV1(w http.ResponseWriter, r *http.Request) {
	pending, err := h.reviewService.ListPending(r.Context())
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, resourcev1.V1ResultsResponse{Results: resourcev1.NewV1Resources(pending)})
}

func (h *HandlerV1) ApproveV1(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, metrics.DecisionApproved, h.reviewService.Approve)
}

func (h *HandlerV1) RejectV1(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, metrics.DecisionRejected, h.reviewService.Reject)
}

func (h *HandlerV1) decide(w http.ResponseWriter, r *http.Request, decision string, apply func(context.Context, uuid.UUID) error) {
	id, err := pathID(r)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	if err := apply(r.Context(), id); err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	metrics.Reviews.WithLabelValues(decision).Inc()

	reviewer := "unknown"
	if claims, ok := session.AdminFromContext(r.Context()); ok {
		reviewer = claims.Username
	}
	h.logger.Info("resource reviewed", "resource_id", id, "decision", decision, "reviewer", reviewer)

	render.JSON(w, r, resourcev1.V1SuccessResponse{Success: true})
}

func (h *HandlerV1) StatsV1(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reviewService.Stats(r.Context())
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, V1StatsResponse{Downloads: stats.Downloads, Resources: stats.Resources})
}

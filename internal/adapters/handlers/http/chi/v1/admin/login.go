package admin

import (
	"errors"
	"fmt"
	"moapyr/internal/adapters/handlers/http/chi/apierror"
	"moapyr/internal/core/domain"
	"moapyr/internal/metrics"
	"net/http"

	"github.com/go-chi/render"
)

// V1LoginRequest is a username and the current authenticator code
type V1LoginRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// V1LoginResponse carries the session token
type V1LoginResponse struct {
	Token string `json:"token"`
}

func (h *HandlerV1) LoginV1(w http.ResponseWriter, r *http.Request) {
	var req V1LoginRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	if req.Username == "" || req.Code == "" {
		apierror.Write(w, r, h.logger, fmt.Errorf("%w: username and code are required", domain.ErrValidation))
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.Logins.WithLabelValues(metrics.LoginFailed).Inc()
			h.logger.Warn("admin login rejected", "username", req.Username)
		}
		apierror.Write(w, r, h.logger, err)
		return
	}
	metrics.Logins.WithLabelValues(metrics.LoginSucceeded).Inc()

	render.JSON(w, r, V1LoginResponse{Token: token})
}

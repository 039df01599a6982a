package admin

import (
	"moapyr/internal/adapters/handlers/http/chi/apierror"
	"net/http"

	"github.com/go-chi/render"
)

// V1RegisterRequest names the admin to enroll
type V1RegisterRequest struct {
	Username string `json:"username"`
}

// V1RegisterResponse returns the enrollment secret, shown once
type V1RegisterResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
	URI      string `json:"uri"`
}

func (h *HandlerV1) RegisterV1(w http.ResponseWriter, r *http.Request) {
	var req V1RegisterRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	enrollment, err := h.authService.Register(r.Context(), r.Header.Get(BootstrapSecretHeader), req.Username)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	h.logger.Info("admin enrolled", "username", enrollment.Username)

	render.JSON(w, r, V1RegisterResponse{
		Success:  true,
		Username: enrollment.Username,
		Secret:   enrollment.Secret,
		URI:      enrollment.ProvisioningURI,
	})
}

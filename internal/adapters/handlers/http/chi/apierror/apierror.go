package apierror

import (
	"errors"
	"log/slog"
	"moapyr/internal/core/domain"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Response is the body of every error response
type Response struct {
	Error string `json:"error"`
}

// Classify maps an error to its HTTP status and client facing message
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, domain.ErrInvalidToken.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrResourceNotFound):
		return http.StatusNotFound, domain.ErrResourceNotFound.Error()
	case errors.Is(err, domain.ErrObjectMissing):
		return http.StatusConflict, domain.ErrObjectMissing.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, domain.ErrConflict.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// Write renders err. Unexpected errors are logged and hidden from the client.
func Write(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, message := Classify(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	Render(w, r, status, message)
}

// Render writes a JSON error body with status
func Render(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, Response{Error: message})
}

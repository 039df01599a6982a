package resource

import (
	"fmt"
	"moapyr/internal/adapters/handlers/http/chi/apierror"
	"moapyr/internal/core/domain"
	"moapyr/internal/metrics"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// V1InitUploadRequest declares a file before its bytes are transferred
type V1InitUploadRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
}

// V1InitUploadResponse tells the client where to PUT the bytes
type V1InitUploadResponse struct {
	ID            uuid.UUID         `json:"id"`
	UploadURL     string            `json:"uploadUrl"`
	FileKey       string            `json:"fileKey"`
	UploadHeaders map[string]string `json:"uploadHeaders"`
	ExpiresAt     int64             `json:"expiresAt"`
}

// V1FinalizeUploadRequest names the resource whose transfer completed
type V1FinalizeUploadRequest struct {
	ID string `json:"id"`
}

func (h *HandlerV1) InitUploadV1(w http.ResponseWriter, r *http.Request) {
	var req V1InitUploadRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	ticket, err := h.resourceService.InitUpload(r.Context(), domain.InitUploadInput{
		Title:            req.Title,
		Description:      req.Description,
		Tags:             req.Tags,
		FileName:         req.FileName,
		FileSize:         req.FileSize,
		RequesterAddress: requesterAddress(r),
	})
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	metrics.UploadsInitialized.Inc()

	headers := ticket.Handoff.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	render.JSON(w, r, V1InitUploadResponse{
		ID:            ticket.ResourceID,
		UploadURL:     ticket.Handoff.URL,
		FileKey:       ticket.FileKey,
		UploadHeaders: headers,
		ExpiresAt:     ticket.Handoff.ExpiresAt.Unix(),
	})
}

func (h *HandlerV1) FinalizeUploadV1(w http.ResponseWriter, r *http.Request) {
	var req V1FinalizeUploadRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	if req.ID == "" {
		apierror.Write(w, r, h.logger, fmt.Errorf("%w: id is required", domain.ErrValidation))
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		apierror.Write(w, r, h.logger, fmt.Errorf("%w: id is not a valid uuid", domain.ErrValidation))
		return
	}

	if err := h.resourceService.FinalizeUpload(r.Context(), id); err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	metrics.UploadsFinalized.Inc()

	render.JSON(w, r, V1SuccessResponse{Success: true})
}

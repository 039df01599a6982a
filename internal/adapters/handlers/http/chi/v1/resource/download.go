package resource

import (
	"moapyr/internal/adapters/handlers/http/chi/apierror"
	"moapyr/internal/metrics"
	"net/http"

	"github.com/go-chi/render"
)

// V1DownloadResponse carries the download handoff
type V1DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   int64  `json:"expiresAt"`
}

func (h *HandlerV1) DownloadV1(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	handoff, err := h.resourceService.RecordDownload(r.Context(), id)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	metrics.DownloadsIssued.Inc()

	render.JSON(w, r, V1DownloadResponse{
		DownloadURL: handoff.URL,
		ExpiresAt:   handoff.ExpiresAt.Unix(),
	})
}

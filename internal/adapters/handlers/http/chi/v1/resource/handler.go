package resource

import (
	"fmt"
	"log/slog"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/port"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// HandlerV1 is the handler for public resource routes
type HandlerV1 struct {
	resourceService port.ResourceService
	logger          *slog.Logger
}

// NewResourceHandlerV1 creates HandlerV1
func NewResourceHandlerV1(service port.ResourceService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		resourceService: service,
		logger:          logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", h.SearchV1)
	router.Get("/tags", h.ListTagsV1)
	router.Post("/init-upload", h.InitUploadV1)
	router.Post("/finalize-upload", h.FinalizeUploadV1)
	router.Get("/{id}", h.GetResourceV1)
	router.Get("/{id}/download", h.DownloadV1)

	return router
}

// V1Resource is the wire representation of a resource
type V1Resource struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        string    `json:"tags"`
	UploaderIP  string    `json:"uploader_ip"`
	FileKey     string    `json:"file_key"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	Status      string    `json:"status"`
	Downloads   int64     `json:"downloads"`
	CreatedAt   int64     `json:"created_at"`
	UpdatedAt   int64     `json:"updated_at"`
}

// NewV1Resource converts a domain resource to its wire representation
func NewV1Resource(res domain.Resource) V1Resource {
	return V1Resource{
		ID:          res.ID,
		Title:       res.Title,
		Description: res.Description,
		Tags:        res.Tags,
		UploaderIP:  res.UploaderAddress,
		FileKey:     res.FileKey,
		FileName:    res.FileName,
		FileSize:    res.FileSize,
		Status:      string(res.Status),
		Downloads:   res.Downloads,
		CreatedAt:   res.CreatedAt.Unix(),
		UpdatedAt:   res.UpdatedAt.Unix(),
	}
}

// NewV1Resources converts a list, never returning nil
func NewV1Resources(resources []domain.Resource) []V1Resource {
	out := make([]V1Resource, 0, len(resources))
	for _, res := range resources {
		out = append(out, NewV1Resource(res))
	}
	return out
}

// V1ResultsResponse wraps a list of resources
type V1ResultsResponse struct {
	Results []V1Resource `json:"results"`
}

// V1SuccessResponse acknowledges a state change
type V1SuccessResponse struct {
	Success bool `json:"success"`
}

// pathID parses the {id} URL param. Anything that is not a uuid cannot name a resource.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrResourceNotFound, err)
	}
	return id, nil
}

// decode reads a JSON body, reporting malformed input as a validation error
func decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return fmt.Errorf("%w: malformed JSON body", domain.ErrValidation)
	}
	return nil
}

// requesterAddress is the client address resolved by the RealIP middleware
func requesterAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package resource

import (
	"moapyr/internal/adapters/handlers/http/chi/apierror"
	"moapyr/internal/core/domain"
	"net/http"

	"github.com/go-chi/render"
)

// V1Tag is a tag with its usage count
type V1Tag struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// V1ListTagsResponse is the response of the tag listing
type V1ListTagsResponse struct {
	Tags []V1Tag `json:"tags"`
}

func (h *HandlerV1) SearchV1(w http.ResponseWriter, r *http.Request) {
	query := domain.SearchQuery{
		Query: r.URL.Query().Get("q"),
		Tag:   r.URL.Query().Get("tag"),
	}

	results, err := h.resourceService.Search(r.Context(), query)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, V1ResultsResponse{Results: NewV1Resources(results)})
}

func (h *HandlerV1) ListTagsV1(w http.ResponseWriter, r *http.Request) {
	tags, err := h.resourceService.ListTags(r.Context())
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	resp := V1ListTagsResponse{Tags: make([]V1Tag, 0, len(tags))}
	for _, tag := range tags {
		resp.Tags = append(resp.Tags, V1Tag{Name: tag.Name, Count: tag.Count})
	}
	render.JSON(w, r, resp)
}

func (h *HandlerV1) GetResourceV1(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	res, err := h.resourceService.GetByID(r.Context(), id)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, NewV1Resource(*res))
}

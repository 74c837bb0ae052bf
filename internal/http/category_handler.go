package http

import (
	"fmt"
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sirupsen/logrus"
)

type categoryRequest struct {
	Name     string `json:"name"`
	ParentID *int32 `json:"parent_id,omitempty"`
}

type categoryResponse struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	ParentID *int32 `json:"parent_id,omitempty"`
}

type categoryHandler struct {
	repo port.CategoryRepository
	log  logrus.FieldLogger
}

func (h *categoryHandler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, toCategoryResponse(c))
	}

	respondBody(w, http.StatusOK, "categories listed", resp)
}

func (h *categoryHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	category, err := h.repo.GetCategory(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondBody(w, http.StatusOK, fmt.Sprintf("category[%d] found", id), toCategoryResponse(category))
}

func (h *categoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.repo.CreateCategory(r.Context(), domain.CategoryFromParent(0, req.Name, req.ParentID))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondBody(w, http.StatusCreated, fmt.Sprintf("category[%d] created", id), idResponse{ID: id})
}

func (h *categoryHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.repo.UpdateCategory(r.Context(), domain.CategoryFromParent(id, req.Name, req.ParentID)); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondMessage(w, http.StatusOK, fmt.Sprintf("category[%d] updated", id))
}

func (h *categoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondMessage(w, http.StatusOK, fmt.Sprintf("category[%d] deleted", id))
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Kind:     c.Kind.String(),
		ParentID: c.ParentRef(),
	}
}

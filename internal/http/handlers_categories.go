package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/auth"
	"fintrack/internal/core"
)

const resourceCategory = "Category"

type categoryRequest struct {
	Name  *string            `json:"name"`
	Color *string            `json:"color"`
	Icon  *string            `json:"icon"`
	Type  *core.CategoryType `json:"type"`
}

func (req categoryRequest) apply(c *core.Category) {
	if v := sanitized(req.Name); v != nil {
		c.Name = *v
	}
	if v := sanitized(req.Color); v != nil {
		c.Color = *v
	}
	if v := sanitized(req.Icon); v != nil {
		c.Icon = *v
	}
	if req.Type != nil {
		c.Type = *req.Type
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.svc.Categories.ListCategories(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, r, resourceCategory, err)
		return
	}
	NewJSONResponse().With("categories", cats).Write(w)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, resourceCategory, err)
		return
	}

	c := core.Category{UserID: auth.UserID(r.Context()), Type: core.CategoryExpense}
	req.apply(&c)

	saved, err := s.svc.Categories.CreateCategory(r.Context(), c)
	if err != nil {
		writeError(w, r, resourceCategory, err)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Message("Category created successfully").
		With("category", saved).
		Write(w)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, resourceCategory, err)
		return
	}

	c, err := s.svc.Categories.GetCategory(ctx, auth.UserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, resourceCategory, err)
		return
	}
	req.apply(&c)

	saved, err := s.svc.Categories.UpdateCategory(ctx, c)
	if err != nil {
		writeError(w, r, resourceCategory, err)
		return
	}
	NewJSONResponse().
		Message("Category updated successfully").
		With("category", saved).
		Write(w)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Categories.DeleteCategory(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, resourceCategory, err)
		return
	}
	NewJSONResponse().Message("Category deleted successfully").Write(w)
}

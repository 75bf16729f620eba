package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

const resourceBudget = "Budget"

// budgetRequest is a create or partial-update body. IsActive is a pointer
// because an omitted flag must not deactivate the budget.
type budgetRequest struct {
	Category       *string      `json:"category"`
	Limit          *core.Money  `json:"limit"`
	Period         *core.Period `json:"period"`
	AlertThreshold *int         `json:"alertThreshold"`
	IsActive       *bool        `json:"isActive"`
}

func (req budgetRequest) apply(b *core.Budget) {
	if v := sanitized(req.Category); v != nil {
		b.Category = *v
	}
	if req.Limit != nil {
		b.Limit = *req.Limit
	}
	if req.Period != nil {
		b.Period = *req.Period
	}
	if req.AlertThreshold != nil {
		b.AlertThreshold = *req.AlertThreshold
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Budgets.ListBudgets(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, r, resourceBudget, err)
		return
	}
	if views == nil {
		views = []services.BudgetView{}
	}
	NewJSONResponse().With("budgets", views).Write(w)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Budgets.GetBudget(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, resourceBudget, err)
		return
	}
	NewJSONResponse().With("budget", view).Write(w)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, resourceBudget, err)
		return
	}
	if req.Limit == nil {
		writeError(w, r, resourceBudget, &core.ValidationError{Field: "limit", Err: core.ErrInvalidAmount})
		return
	}

	// Defaults only cover omitted fields; an explicit 0 threshold is rejected.
	b := core.Budget{
		UserID:         auth.UserID(r.Context()),
		AlertThreshold: core.DefaultAlertThreshold,
		IsActive:       true,
	}
	req.apply(&b)

	saved, err := s.svc.Budgets.CreateBudget(r.Context(), b)
	if err != nil {
		writeError(w, r, resourceBudget, err)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Message("Budget created successfully").
		With("budget", saved).
		Write(w)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, resourceBudget, err)
		return
	}

	view, err := s.svc.Budgets.GetBudget(ctx, auth.UserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, resourceBudget, err)
		return
	}
	b := view.Budget
	req.apply(&b)

	saved, err := s.svc.Budgets.UpdateBudget(ctx, b)
	if err != nil {
		writeError(w, r, resourceBudget, err)
		return
	}
	NewJSONResponse().
		Message("Budget updated successfully").
		With("budget", saved).
		Write(w)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Budgets.DeleteBudget(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, resourceBudget, err)
		return
	}
	NewJSONResponse().Message("Budget deleted successfully").Write(w)
}

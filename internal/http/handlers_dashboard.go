package http

import (
	"net/http"

	"fintrack/internal/auth"
)

// handleDashboardSummary serves the chart aggregates for the current user.
func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Transactions.Summary(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, r, "Dashboard", err)
		return
	}
	NewJSONResponse().With("summary", summary).Write(w)
}

package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

// writeError maps a service error to a status and message. Unexpected errors
// are logged with the request's context and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, resource string, err error) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		BadRequestError(ve.Error()).Write(w)
	case errors.Is(err, errMalformedBody):
		BadRequestError("Invalid request body").Write(w)
	case errors.Is(err, store.ErrNotFound):
		NotFoundError(resource + " not found").Write(w)
	case errors.Is(err, services.ErrDuplicateBudget),
		errors.Is(err, services.ErrDuplicateCategory),
		errors.Is(err, services.ErrEmailTaken):
		BadRequestError(err.Error()).Write(w)
	case errors.Is(err, services.ErrReopenPaidBill):
		ErrorResponse(http.StatusConflict, "Paid bills cannot be marked unpaid").Write(w)
	case errors.Is(err, services.ErrBadCredentials):
		ErrorResponse(http.StatusUnauthorized, err.Error()).Write(w)
	default:
		log.FromContext(r.Context()).Error("Request failed", log.NewFields().
			WithUser(auth.UserID(r.Context())).
			WithResource(resource, chi.URLParam(r, "id")).
			WithOperation(r.Method).
			WithError(err).
			ToSlice()...)
		InternalServerError().Write(w)
	}
}

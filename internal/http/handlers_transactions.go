package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

const resourceTransaction = "Transaction"

// transactionRequest is a create or partial-update body. Nil fields are left unchanged.
type transactionRequest struct {
	Amount      *core.Money           `json:"amount"`
	Description *string               `json:"description"`
	Category    *string               `json:"category"`
	Type        *core.TransactionKind `json:"type"`
	Date        *string               `json:"date"`
	Tags        []string              `json:"tags"`
}

func (req transactionRequest) apply(tx *core.Transaction, loc *time.Location) error {
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if v := sanitized(req.Description); v != nil {
		tx.Description = *v
	}
	if v := sanitized(req.Category); v != nil {
		tx.Category = *v
	}
	if req.Type != nil {
		tx.Kind = *req.Type
	}
	if req.Date != nil && *req.Date != "" {
		t, err := parseTimestamp(*req.Date, loc)
		if err != nil {
			return &core.ValidationError{Field: "date", Err: err}
		}
		tx.Date = t
	}
	if req.Tags != nil {
		tags := make([]string, 0, len(req.Tags))
		for _, tag := range req.Tags {
			if tag = sanitizeInput(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		tx.Tags = tags
	}
	return nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := parseTransactionFilter(r.URL.Query(), s.location())
	if err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}
	txs, err := s.svc.Transactions.ListTransactions(r.Context(), auth.UserID(r.Context()), f)
	if err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	NewJSONResponse().With("transactions", txs).With("count", len(txs)).Write(w)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.svc.Transactions.GetTransaction(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}
	NewJSONResponse().With("transaction", tx).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}
	if req.Amount == nil {
		writeError(w, r, resourceTransaction, &core.ValidationError{Field: "amount", Err: core.ErrInvalidAmount})
		return
	}

	tx := core.Transaction{UserID: auth.UserID(r.Context()), Kind: core.KindExpense}
	if err := req.apply(&tx, s.location()); err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}

	saved, err := s.svc.Transactions.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}
	log.FromContext(r.Context()).Info("Transaction created", log.NewFields().
		WithUser(saved.UserID).
		WithResource("transaction", saved.ID).
		WithOperation(log.OpCreate).
		ToSlice()...)

	NewJSONResponse().
		Status(http.StatusCreated).
		Message("Transaction created successfully").
		With("transaction", saved).
		Write(w)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}

	tx, err := s.svc.Transactions.GetTransaction(ctx, auth.UserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}
	if err := req.apply(&tx, s.location()); err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}

	saved, err := s.svc.Transactions.UpdateTransaction(ctx, tx)
	if err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}
	NewJSONResponse().
		Message("Transaction updated successfully").
		With("transaction", saved).
		Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Transactions.DeleteTransaction(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, resourceTransaction, err)
		return
	}
	NewJSONResponse().Message("Transaction deleted successfully").Write(w)
}

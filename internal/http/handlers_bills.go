package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

const resourceBill = "Bill"

type vendorRequest struct {
	Name    *string `json:"name"`
	Website *string `json:"website"`
	Phone   *string `json:"phone"`
}

// billRequest is a create or partial-update body. paidDate is not accepted:
// it is always the server's clock at the moment the bill is marked paid.
type billRequest struct {
	Name          *string          `json:"name"`
	Amount        *core.Money      `json:"amount"`
	DueDate       *core.Date       `json:"dueDate"`
	Category      *string          `json:"category"`
	Recurring     *core.Recurrence `json:"recurring"`
	ReminderDays  *int             `json:"reminderDays"`
	IsPaid        *bool            `json:"isPaid"`
	Notes         *string          `json:"notes"`
	PaymentMethod *string          `json:"paymentMethod"`
	Vendor        *vendorRequest   `json:"vendor"`
}

func (req billRequest) apply(b *core.Bill) {
	if v := sanitized(req.Name); v != nil {
		b.Name = *v
	}
	if req.Amount != nil {
		b.Amount = *req.Amount
	}
	if req.DueDate != nil {
		b.DueDate = *req.DueDate
	}
	if v := sanitized(req.Category); v != nil {
		b.Category = *v
	}
	if req.Recurring != nil {
		b.Recurring = *req.Recurring
	}
	if req.ReminderDays != nil {
		b.ReminderDays = *req.ReminderDays
	}
	if req.IsPaid != nil {
		b.IsPaid = *req.IsPaid
	}
	if v := sanitized(req.Notes); v != nil {
		b.Notes = *v
	}
	if v := sanitized(req.PaymentMethod); v != nil {
		b.PaymentMethod = *v
	}
	if req.Vendor != nil {
		if v := sanitized(req.Vendor.Name); v != nil {
			b.Vendor.Name = *v
		}
		if v := sanitized(req.Vendor.Website); v != nil {
			b.Vendor.Website = *v
		}
		if v := sanitized(req.Vendor.Phone); v != nil {
			b.Vendor.Phone = *v
		}
	}
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	q, err := parseBillQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, resourceBill, err)
		return
	}
	bills, err := s.svc.Bills.ListBills(r.Context(), auth.UserID(r.Context()), q)
	if err != nil {
		writeError(w, r, resourceBill, err)
		return
	}
	if bills == nil {
		bills = []services.BillView{}
	}
	NewJSONResponse().With("bills", bills).Write(w)
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Bills.GetBill(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, resourceBill, err)
		return
	}
	NewJSONResponse().With("bill", view).Write(w)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, resourceBill, err)
		return
	}
	if req.Amount == nil {
		writeError(w, r, resourceBill, &core.ValidationError{Field: "amount", Err: core.ErrInvalidAmount})
		return
	}

	b := core.Bill{UserID: auth.UserID(r.Context()), ReminderDays: core.DefaultReminderDays}
	req.apply(&b)

	view, err := s.svc.Bills.CreateBill(r.Context(), b)
	if err != nil {
		writeError(w, r, resourceBill, err)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Message("Bill created successfully").
		With("bill", view).
		Write(w)
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, resourceBill, err)
		return
	}

	existing, err := s.svc.Bills.GetBill(ctx, auth.UserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, resourceBill, err)
		return
	}
	b := existing.Bill
	req.apply(&b)

	view, err := s.svc.Bills.UpdateBill(ctx, b)
	if err != nil {
		writeError(w, r, resourceBill, err)
		return
	}
	NewJSONResponse().
		Message("Bill updated successfully").
		With("bill", view).
		Write(w)
}

func (s *Server) handlePayBill(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Bills.MarkPaid(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, resourceBill, err)
		return
	}
	NewJSONResponse().
		Message("Bill marked as paid").
		With("bill", view).
		Write(w)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Bills.DeleteBill(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, resourceBill, err)
		return
	}
	NewJSONResponse().Message("Bill deleted successfully").Write(w)
}

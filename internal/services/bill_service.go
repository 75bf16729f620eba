package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// UpcomingDays is the horizon of the upcoming=true bill filter.
const UpcomingDays = 30

// BillView is a classified bill as the API returns it.
type BillView struct {
	core.ClassifiedBill
	StatusText string `json:"statusText"`
}

// BillQuery narrows ListBills. Status is "", "paid" or "unpaid".
type BillQuery struct {
	Status   string
	Upcoming bool
}

type BillService struct {
	bills store.BillStore
	clock core.Clock
}

func NewBillService(bills store.BillStore, clock core.Clock) *BillService {
	return &BillService{bills: bills, clock: clock}
}

func (s *BillService) CreateBill(ctx context.Context, b core.Bill) (BillView, error) {
	b.ApplyDefaults()
	now := s.clock.Now()
	if b.IsPaid && b.PaidDate == nil {
		b.PaidDate = &now
	}
	if err := b.Validate(); err != nil {
		return BillView{}, err
	}
	b.ID = ""
	b.CreatedAt, b.UpdatedAt = now, now

	saved, err := s.bills.CreateBill(ctx, b)
	if err != nil {
		return BillView{}, fmt.Errorf("save bill: %w", err)
	}
	return s.view(saved), nil
}

// UpdateBill replaces the editable fields of a bill. A paid bill stays paid:
// asking for isPaid=false on it fails with ErrReopenPaidBill.
func (s *BillService) UpdateBill(ctx context.Context, b core.Bill) (BillView, error) {
	existing, err := s.bills.GetBill(ctx, b.UserID, b.ID)
	if err != nil {
		return BillView{}, err
	}
	if existing.IsPaid && !b.IsPaid {
		return BillView{}, ErrReopenPaidBill
	}

	b.ApplyDefaults()
	now := s.clock.Now()
	switch {
	case existing.IsPaid:
		b.PaidDate = existing.PaidDate
	case b.IsPaid:
		b.PaidDate = &now
	default:
		b.PaidDate = nil
	}
	if err := b.Validate(); err != nil {
		return BillView{}, err
	}
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = now

	saved, err := s.bills.UpdateBill(ctx, b)
	if err != nil {
		return BillView{}, fmt.Errorf("update bill: %w", err)
	}
	return s.view(saved), nil
}

// MarkPaid records payment at the clock's now. Paying an already paid bill
// changes nothing and keeps the original paid date.
func (s *BillService) MarkPaid(ctx context.Context, userID, id string) (BillView, error) {
	b, err := s.bills.GetBill(ctx, userID, id)
	if err != nil {
		return BillView{}, err
	}
	if b.IsPaid {
		return s.view(b), nil
	}

	now := s.clock.Now()
	b.IsPaid = true
	b.PaidDate = &now
	b.UpdatedAt = now
	saved, err := s.bills.UpdateBill(ctx, b)
	if err != nil {
		return BillView{}, fmt.Errorf("mark bill paid: %w", err)
	}
	return s.view(saved), nil
}

func (s *BillService) DeleteBill(ctx context.Context, userID, id string) error {
	return s.bills.DeleteBill(ctx, userID, id)
}

func (s *BillService) GetBill(ctx context.Context, userID, id string) (BillView, error) {
	b, err := s.bills.GetBill(ctx, userID, id)
	if err != nil {
		return BillView{}, err
	}
	return s.view(b), nil
}

// ListBills returns the user's bills in display order: overdue, due today,
// due soon, upcoming, paid.
func (s *BillService) ListBills(ctx context.Context, userID string, q BillQuery) ([]BillView, error) {
	today := core.Today(s.clock)

	var f store.BillFilter
	switch q.Status {
	case "paid":
		paid := true
		f.Paid = &paid
	case "unpaid":
		paid := false
		f.Paid = &paid
	}
	if q.Upcoming {
		paid := false
		f.Paid = &paid
		f.DueBefore = today.AddDays(UpcomingDays)
	}

	bills, err := s.bills.ListBills(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	classified := core.ClassifyBills(bills, today)
	views := make([]BillView, len(classified))
	for i, cb := range classified {
		views[i] = BillView{ClassifiedBill: cb, StatusText: cb.StatusText()}
	}
	return views, nil
}

func (s *BillService) view(b core.Bill) BillView {
	c := core.ClassifyBill(b, core.Today(s.clock))
	return BillView{
		ClassifiedBill: core.ClassifiedBill{Bill: b, BillClassification: c},
		StatusText:     c.StatusText(),
	}
}

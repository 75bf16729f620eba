package core

import (
	"fmt"
	"sort"
)

const (
	BillOverdue  BillStatus = "overdue"
	BillDueToday BillStatus = "due-today"
	BillDueSoon  BillStatus = "due-soon"
	BillUpcoming BillStatus = "upcoming"
	BillPaid     BillStatus = "paid"
)

type BillStatus string

var billRank = map[BillStatus]int{
	BillOverdue:  0,
	BillDueToday: 1,
	BillDueSoon:  2,
	BillUpcoming: 3,
	BillPaid:     4,
}

// Rank is the display position of a status, most urgent first.
func (s BillStatus) Rank() int {
	if r, ok := billRank[s]; ok {
		return r
	}
	return len(billRank)
}

// BillClassification describes a bill relative to today.
type BillClassification struct {
	Status       BillStatus `json:"status"`
	DaysUntilDue int        `json:"daysUntilDue"`
	SortKey      int        `json:"-"`
}

// OverdueDays is the overdue magnitude, zero unless the bill is overdue.
func (c BillClassification) OverdueDays() int {
	if c.Status != BillOverdue {
		return 0
	}
	return -c.DaysUntilDue
}

// ClassifyBill places b in exactly one status. Paid overrides every date rule.
func ClassifyBill(b Bill, today Date) BillClassification {
	days := today.DaysUntil(b.DueDate)
	var status BillStatus
	switch {
	case b.IsPaid:
		status = BillPaid
	case days < 0:
		status = BillOverdue
	case days == 0:
		status = BillDueToday
	case days <= b.ReminderDays:
		status = BillDueSoon
	default:
		status = BillUpcoming
	}
	return BillClassification{Status: status, DaysUntilDue: days, SortKey: status.Rank()}
}

// ClassifyBillWith classifies b against the clock's current date.
func ClassifyBillWith(b Bill, clock Clock) BillClassification {
	return ClassifyBill(b, Today(clock))
}

// StatusText renders the short human label shown next to a bill.
func (c BillClassification) StatusText() string {
	switch c.Status {
	case BillPaid:
		return "Paid"
	case BillOverdue:
		return fmt.Sprintf("Overdue by %s", pluralDays(c.OverdueDays()))
	case BillDueToday:
		return "Due today"
	default:
		return fmt.Sprintf("Due in %s", pluralDays(c.DaysUntilDue))
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// ClassifiedBill pairs a bill with its classification.
type ClassifiedBill struct {
	Bill
	BillClassification
}

// ClassifyBills classifies every bill and returns them in display order.
func ClassifyBills(bills []Bill, today Date) []ClassifiedBill {
	out := make([]ClassifiedBill, len(bills))
	for i, b := range bills {
		out[i] = ClassifiedBill{Bill: b, BillClassification: ClassifyBill(b, today)}
	}
	SortBills(out)
	return out
}

// SortBills orders by status rank, then ascending due date. Bills that still
// tie are ordered by id so the result never depends on input order.
func SortBills(bills []ClassifiedBill) {
	sort.SliceStable(bills, func(i, j int) bool {
		a, b := bills[i], bills[j]
		if a.SortKey != b.SortKey {
			return a.SortKey < b.SortKey
		}
		if !a.DueDate.Equal(b.DueDate.Time) {
			return a.DueDate.Before(b.DueDate.Time)
		}
		return a.ID < b.ID
	})
}

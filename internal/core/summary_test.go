package core

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC) // Wednesday
	at := func(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 10, 0, 0, 0, time.UTC) }
	txs := []Transaction{
		{Amount: MustMoney("3000"), Category: "Salary", Kind: KindIncome, Date: at(2025, 3, 1)},
		{Amount: MustMoney("40"), Category: "Food", Kind: KindExpense, Date: at(2025, 3, 12)},
		{Amount: MustMoney("60"), Category: "Food", Kind: KindExpense, Date: at(2025, 3, 2)},
		{Amount: MustMoney("200"), Category: "Travel", Kind: KindExpense, Date: at(2025, 3, 5)},
		{Amount: MustMoney("0"), Category: "Misc", Kind: KindExpense, Date: at(2025, 3, 5)},
		{Amount: MustMoney("80"), Category: "Food", Kind: KindExpense, Date: at(2025, 1, 15)},
		{Amount: MustMoney("999"), Category: "Food", Kind: KindExpense, Date: at(2024, 6, 1)},
	}

	s := Summarize(txs, now)

	if s.TotalIncome.String() != "3000.00" {
		t.Errorf("TotalIncome = %s", s.TotalIncome)
	}
	if s.TotalExpenses.String() != "1379.00" {
		t.Errorf("TotalExpenses = %s", s.TotalExpenses)
	}
	if s.Balance.String() != "1621.00" {
		t.Errorf("Balance = %s", s.Balance)
	}
	if s.MonthExpenses.String() != "300.00" {
		t.Errorf("MonthExpenses = %s", s.MonthExpenses)
	}

	if len(s.ByCategory) != 2 {
		t.Fatalf("ByCategory = %+v, want 2 entries (zero categories dropped)", s.ByCategory)
	}
	if s.ByCategory[0].Name != "Travel" || s.ByCategory[1].Name != "Food" {
		t.Errorf("ByCategory order = %+v", s.ByCategory)
	}

	if len(s.Monthly) != 6 || len(s.Daily) != 30 || len(s.Weekly) != 12 {
		t.Fatalf("series lengths = %d/%d/%d", len(s.Monthly), len(s.Daily), len(s.Weekly))
	}
	if s.Monthly[5].Label != "Mar 2025" || s.Monthly[0].Label != "Oct 2024" {
		t.Errorf("monthly labels = %s..%s", s.Monthly[0].Label, s.Monthly[5].Label)
	}
	if s.Monthly[3].Expenses.String() != "80.00" {
		t.Errorf("January expenses = %s", s.Monthly[3].Expenses)
	}
	if s.Monthly[5].Net.String() != "2700.00" {
		t.Errorf("March net = %s", s.Monthly[5].Net)
	}

	last := s.Daily[29]
	if !last.Start.Equal(NewDate(2025, 3, 12).Time) || last.Expenses.String() != "40.00" {
		t.Errorf("last daily point = %+v", last)
	}

	for _, p := range s.Weekly {
		if p.Start.Weekday() != time.Sunday {
			t.Fatalf("weekly bucket starts on %v", p.Start.Weekday())
		}
	}
	if cur := s.Weekly[11]; !cur.Start.Equal(NewDate(2025, 3, 9).Time) || cur.Expenses.String() != "40.00" {
		t.Errorf("current week = %+v", cur)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	if !s.Balance.IsZero() || len(s.ByCategory) != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	for _, p := range s.Daily {
		if !p.Net.IsZero() {
			t.Fatalf("daily point %+v should be zero", p)
		}
	}
}

package core

import (
	"sort"
	"time"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// SeriesPoint is one bucket of a chart series.
type SeriesPoint struct {
	Label    string `json:"label"`
	Start    Date   `json:"start"`
	Income   Money  `json:"income"`
	Expenses Money  `json:"expenses"`
	Net      Money  `json:"net"`
}

// DashboardSummary holds every aggregate the dashboard renders.
type DashboardSummary struct {
	TotalIncome       Money            `json:"totalIncome"`
	TotalExpenses     Money            `json:"totalExpenses"`
	Balance           Money            `json:"balance"`
	MonthExpenses     Money            `json:"monthExpenses"`
	ByCategory        []CategoryAmount `json:"byCategory"`
	Monthly           []SeriesPoint    `json:"monthly"`
	Daily             []SeriesPoint    `json:"daily"`
	Weekly            []SeriesPoint    `json:"weekly"`
	TransactionsCount int              `json:"transactionsCount"`
	GeneratedAt       time.Time        `json:"generatedAt"`
}

const (
	summaryMonths = 6
	summaryDays   = 30
	summaryWeeks  = 12
)

// Summarize computes the dashboard aggregates for txs as seen at now.
// It is pure: the same input always gives the same summary.
func Summarize(txs []Transaction, now time.Time) DashboardSummary {
	s := DashboardSummary{
		TotalIncome:       Zero,
		TotalExpenses:     Zero,
		MonthExpenses:     Zero,
		TransactionsCount: len(txs),
		GeneratedAt:       now,
	}
	loc := now.Location()
	monthStart := MonthlyWindow{}.Start(now)
	nextMonth := monthStart.AddDate(0, 1, 0)

	byCat := map[string]Money{}
	for _, tx := range txs {
		switch tx.Kind {
		case KindIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case KindExpense:
			s.TotalExpenses = s.TotalExpenses.Add(tx.Amount)
			local := tx.Date.In(loc)
			if !local.Before(monthStart) && local.Before(nextMonth) {
				s.MonthExpenses = s.MonthExpenses.Add(tx.Amount)
				byCat[tx.Category] = byCat[tx.Category].Add(tx.Amount)
			}
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	s.ByCategory = categoryBreakdown(byCat)
	s.Monthly = monthlySeries(txs, now)
	s.Daily = dailySeries(txs, now)
	s.Weekly = weeklySeries(txs, now)
	return s
}

func categoryBreakdown(byCat map[string]Money) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(byCat))
	for name, amt := range byCat {
		if !amt.IsPositive() {
			continue
		}
		out = append(out, CategoryAmount{Name: name, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount.Decimal) {
			return out[i].Amount.GreaterThan(out[j].Amount.Decimal)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type bucket struct {
	start, end time.Time // [start, end)
	label      string
}

func fillSeries(txs []Transaction, buckets []bucket) []SeriesPoint {
	points := make([]SeriesPoint, len(buckets))
	for i, b := range buckets {
		points[i] = SeriesPoint{Label: b.label, Start: DateOf(b.start), Income: Zero, Expenses: Zero}
	}
	for _, tx := range txs {
		for i, b := range buckets {
			if tx.Date.Before(b.start) || !tx.Date.Before(b.end) {
				continue
			}
			switch tx.Kind {
			case KindIncome:
				points[i].Income = points[i].Income.Add(tx.Amount)
			case KindExpense:
				points[i].Expenses = points[i].Expenses.Add(tx.Amount)
			}
			break
		}
	}
	for i := range points {
		points[i].Net = points[i].Income.Sub(points[i].Expenses)
	}
	return points
}

func monthlySeries(txs []Transaction, now time.Time) []SeriesPoint {
	y, m, _ := now.Date()
	buckets := make([]bucket, 0, summaryMonths)
	for i := summaryMonths - 1; i >= 0; i-- {
		start := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		buckets = append(buckets, bucket{start: start, end: start.AddDate(0, 1, 0), label: start.Format("Jan 2006")})
	}
	return fillSeries(txs, buckets)
}

func dailySeries(txs []Transaction, now time.Time) []SeriesPoint {
	y, m, d := now.Date()
	buckets := make([]bucket, 0, summaryDays)
	for i := summaryDays - 1; i >= 0; i-- {
		start := time.Date(y, m, d-i, 0, 0, 0, 0, now.Location())
		end := time.Date(y, m, d-i+1, 0, 0, 0, 0, now.Location())
		buckets = append(buckets, bucket{start: start, end: end, label: start.Format("Jan 2")})
	}
	return fillSeries(txs, buckets)
}

func weeklySeries(txs []Transaction, now time.Time) []SeriesPoint {
	current := WeeklyWindow{}.Start(now)
	y, m, d := current.Date()
	buckets := make([]bucket, 0, summaryWeeks)
	for i := summaryWeeks - 1; i >= 0; i-- {
		start := time.Date(y, m, d-7*i, 0, 0, 0, 0, now.Location())
		end := time.Date(y, m, d-7*i+7, 0, 0, 0, 0, now.Location())
		buckets = append(buckets, bucket{start: start, end: end, label: start.Format("Jan 2")})
	}
	return fillSeries(txs, buckets)
}

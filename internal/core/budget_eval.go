package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BudgetUnder     BudgetStatus = "under"
	BudgetNearLimit BudgetStatus = "near-limit"
	BudgetOver      BudgetStatus = "over"
)

type BudgetStatus string

var hundred = decimal.NewFromInt(100)

// BudgetEvaluation is the outcome of checking spending against a budget.
// Percentage is nil when the limit is zero.
type BudgetEvaluation struct {
	Spent       Money
	Percentage  *float64
	Status      BudgetStatus
	WindowStart time.Time
}

// EvaluateBudget classifies spent against b's limit and alert threshold.
//
// Comparisons are done on decimals: spent > limit is over, spent*100 >=
// limit*threshold is near-limit. A zero limit is over as soon as anything is
// spent and under otherwise.
func EvaluateBudget(b Budget, spent Money) BudgetEvaluation {
	ev := BudgetEvaluation{Spent: spent}
	limit := b.Limit.Decimal

	if limit.IsZero() {
		if spent.IsPositive() {
			ev.Status = BudgetOver
		} else {
			ev.Status = BudgetUnder
		}
		return ev
	}

	pct, _ := spent.Mul(hundred).Div(limit).Round(2).Float64()
	ev.Percentage = &pct

	threshold := limit.Mul(decimal.NewFromInt(int64(b.AlertThreshold)))
	switch {
	case spent.GreaterThan(limit):
		ev.Status = BudgetOver
	case spent.Mul(hundred).GreaterThanOrEqual(threshold):
		ev.Status = BudgetNearLimit
	default:
		ev.Status = BudgetUnder
	}
	return ev
}

// EvaluateBudgetAt aggregates txs over b's current window and evaluates the result.
func EvaluateBudgetAt(b Budget, txs []Transaction, now time.Time) BudgetEvaluation {
	w := WindowFor(b.Period, now)
	ev := EvaluateBudget(b, SpentInWindow(txs, b.Category, w))
	ev.WindowStart = w.Start
	return ev
}

// EvaluateBudgetWith is the clock-driven form: spentFn receives the window
// and returns the spending inside it.
func EvaluateBudgetWith(b Budget, spentFn func(Window) Money, clock Clock) BudgetEvaluation {
	w := WindowFor(b.Period, clock.Now())
	ev := EvaluateBudget(b, spentFn(w))
	ev.WindowStart = w.Start
	return ev
}

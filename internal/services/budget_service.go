package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// BudgetView is a budget together with its evaluation for the current window.
type BudgetView struct {
	core.Budget
	CurrentSpending core.Money        `json:"currentSpending"`
	Percentage      *float64          `json:"percentage"`
	Status          core.BudgetStatus `json:"status"`
	WindowStart     time.Time         `json:"windowStart"`
}

// BudgetService manages budgets and evaluates them against recorded spending.
type BudgetService struct {
	budgets      store.BudgetStore
	transactions store.TransactionStore
	clock        core.Clock
}

func NewBudgetService(budgets store.BudgetStore, transactions store.TransactionStore, clock core.Clock) *BudgetService {
	return &BudgetService{budgets: budgets, transactions: transactions, clock: clock}
}

func (s *BudgetService) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	now := s.clock.Now()
	b.ID = ""
	b.CreatedAt, b.UpdatedAt = now, now

	saved, err := s.budgets.CreateBudget(ctx, b)
	if errors.Is(err, store.ErrDuplicate) {
		return core.Budget{}, ErrDuplicateBudget
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("save budget: %w", err)
	}
	return saved, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	existing, err := s.budgets.GetBudget(ctx, b.UserID, b.ID)
	if err != nil {
		return core.Budget{}, err
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = s.clock.Now()

	saved, err := s.budgets.UpdateBudget(ctx, b)
	if errors.Is(err, store.ErrDuplicate) {
		return core.Budget{}, ErrDuplicateBudget
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	return saved, nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, userID, id string) error {
	return s.budgets.DeleteBudget(ctx, userID, id)
}

func (s *BudgetService) GetBudget(ctx context.Context, userID, id string) (BudgetView, error) {
	b, err := s.budgets.GetBudget(ctx, userID, id)
	if err != nil {
		return BudgetView{}, err
	}
	return s.view(ctx, b)
}

// ListBudgets returns every budget of the user evaluated at the clock's now,
// sorted by category.
func (s *BudgetService) ListBudgets(ctx context.Context, userID string) ([]BudgetView, error) {
	budgets, err := s.budgets.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	views := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		v, err := s.view(ctx, b)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Category < views[j].Category
	})
	return views, nil
}

// Evaluate computes b's status over its current window.
func (s *BudgetService) Evaluate(ctx context.Context, b core.Budget) (core.BudgetEvaluation, error) {
	w := core.WindowFor(b.Period, s.clock.Now())
	txs, err := s.transactions.ListTransactions(ctx, b.UserID, store.TransactionFilter{
		Kind:     core.KindExpense,
		Category: b.Category,
		From:     w.Start,
		To:       w.End,
	})
	if err != nil {
		return core.BudgetEvaluation{}, fmt.Errorf("list spending for budget %s: %w", b.ID, err)
	}
	ev := core.EvaluateBudget(b, core.SpentInWindow(txs, b.Category, w))
	ev.WindowStart = w.Start
	return ev, nil
}

func (s *BudgetService) view(ctx context.Context, b core.Budget) (BudgetView, error) {
	ev, err := s.Evaluate(ctx, b)
	if err != nil {
		return BudgetView{}, err
	}
	return BudgetView{
		Budget:          b,
		CurrentSpending: ev.Spent,
		Percentage:      ev.Percentage,
		Status:          ev.Status,
		WindowStart:     ev.WindowStart,
	}, nil
}

// Package store declares the persistence ports every backend implements.
// Every call is scoped by user id; a record owned by another user is
// reported as ErrNotFound.
package store

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/core"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Filters for list operations. Zero values mean "no constraint".
type (
	TransactionFilter struct {
		Kind     core.TransactionKind
		Category string
		From     time.Time // inclusive
		To       time.Time // inclusive
		Limit    int
	}

	BillFilter struct {
		Paid      *bool
		DueBefore core.Date // inclusive
	}

	NotificationFilter struct {
		UnreadOnly bool
		Types      []core.NotificationType
	}
)

// Ports for outbound adapters.
type (
	TransactionStore interface {
		CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
		GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, userID, id string) error
		// ListTransactions returns matches newest first.
		ListTransactions(ctx context.Context, userID string, f TransactionFilter) ([]core.Transaction, error)
	}

	// BudgetStore enforces uniqueness of (user, category, period) with ErrDuplicate.
	BudgetStore interface {
		CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		GetBudget(ctx context.Context, userID, id string) (core.Budget, error)
		UpdateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		DeleteBudget(ctx context.Context, userID, id string) error
		// ListBudgets returns budgets ordered by category, then period.
		ListBudgets(ctx context.Context, userID string) ([]core.Budget, error)
	}

	BillStore interface {
		CreateBill(ctx context.Context, b core.Bill) (core.Bill, error)
		GetBill(ctx context.Context, userID, id string) (core.Bill, error)
		UpdateBill(ctx context.Context, b core.Bill) (core.Bill, error)
		DeleteBill(ctx context.Context, userID, id string) error
		// ListBills returns bills ordered by due date.
		ListBills(ctx context.Context, userID string, f BillFilter) ([]core.Bill, error)
	}

	// CategoryStore enforces unique names per user with ErrDuplicate.
	CategoryStore interface {
		CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
		GetCategory(ctx context.Context, userID, id string) (core.Category, error)
		UpdateCategory(ctx context.Context, c core.Category) (core.Category, error)
		DeleteCategory(ctx context.Context, userID, id string) error
		ListCategories(ctx context.Context, userID string) ([]core.Category, error)
	}

	NotificationStore interface {
		// CreateNotification inserts n unless the user already has one with the
		// same DedupeKey; created reports which happened.
		CreateNotification(ctx context.Context, n core.Notification) (created bool, err error)
		// ListNotifications returns matches newest first.
		ListNotifications(ctx context.Context, userID string, f NotificationFilter) ([]core.Notification, error)
		CountUnread(ctx context.Context, userID string) (int, error)
		MarkRead(ctx context.Context, userID, id string) error
		MarkAllRead(ctx context.Context, userID string) (int, error)
		DeleteNotification(ctx context.Context, userID, id string) error
	}

	UserStore interface {
		CreateUser(ctx context.Context, u core.User) (core.User, error)
		GetUserByEmail(ctx context.Context, email string) (core.User, error)
		ListUserIDs(ctx context.Context) ([]string, error)
	}

	// Store is the full persistence surface a backend provides.
	Store interface {
		TransactionStore
		BudgetStore
		BillStore
		CategoryStore
		NotificationStore
		UserStore
		Ping(ctx context.Context) error
		Close() error
	}
)

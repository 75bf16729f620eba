// Package services provides business logic and orchestration services.
package services

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

var (
	// ErrReopenPaidBill rejects turning a paid bill back into an unpaid one.
	ErrReopenPaidBill = errors.New("paid bills cannot be reopened")

	ErrDuplicateBudget   = errors.New("Budget already exists for this category and period")
	ErrDuplicateCategory = errors.New("Category with this name already exists")
	ErrEmailTaken        = errors.New("User already exists")
	ErrBadCredentials    = errors.New("Invalid credentials")
)

// EventPublisher announces writes to other processes.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, tx core.Transaction) error
}

// SummaryCache holds computed dashboards, grouped by user for invalidation.
type SummaryCache interface {
	Get(key string) (core.DashboardSummary, bool)
	SetInGroup(group, key string, data core.DashboardSummary)
	InvalidateGroup(group string) int
}

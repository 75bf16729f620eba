package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// TransactionService orchestrates transaction writes across the store, the
// dashboard cache and the event bus.
type TransactionService struct {
	store     store.TransactionStore
	publisher EventPublisher
	cache     SummaryCache
	clock     core.Clock

	// generations counts invalidations per user. A summary computed from a
	// read that raced with a write is not cached.
	mu          sync.Mutex
	generations map[string]uint64
}

func NewTransactionService(s store.TransactionStore, publisher EventPublisher, cache SummaryCache, clock core.Clock) *TransactionService {
	return &TransactionService{
		store:       s,
		publisher:   publisher,
		cache:       cache,
		clock:       clock,
		generations: make(map[string]uint64),
	}
}

// CreateTransaction saves a transaction and publishes transaction.created.
// A zero date means now.
func (s *TransactionService) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	now := s.clock.Now()
	if tx.Date.IsZero() {
		tx.Date = now
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx.ID = ""
	tx.CreatedAt = now

	saved, err := s.store.CreateTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.invalidate(ctx, saved.UserID)

	if err := s.publishCreated(ctx, saved); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", saved.ID, "error", err)
		// Don't fail the request - transaction is saved locally
	}
	return saved, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	saved, err := s.store.UpdateTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	s.invalidate(ctx, saved.UserID)
	return saved, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, userID, id)
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID string, f store.TransactionFilter) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Summary returns the dashboard aggregates, served from cache when possible.
// Entries are keyed by calendar day so a cached summary never outlives its date buckets.
func (s *TransactionService) Summary(ctx context.Context, userID string) (core.DashboardSummary, error) {
	now := s.clock.Now()
	key := "summary:" + userID + ":" + core.DateOf(now).String()
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			slog.DebugContext(ctx, "Dashboard summary cache hit", "user_id", userID)
			return cached, nil
		}
	}

	gen := s.generation(userID)
	txs, err := s.store.ListTransactions(ctx, userID, store.TransactionFilter{})
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("list transactions: %w", err)
	}
	summary := core.Summarize(txs, now)
	if s.cache != nil {
		s.mu.Lock()
		if s.generations[userID] == gen {
			s.cache.SetInGroup(userID, key, summary)
		} else {
			slog.DebugContext(ctx, "Dashboard summary changed during read, not cached", "user_id", userID)
		}
		s.mu.Unlock()
	}
	return summary, nil
}

func (s *TransactionService) generation(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

// invalidate bumps the user's generation before dropping cached entries, so
// a Summary that read before this write cannot store its result afterwards.
func (s *TransactionService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	s.generations[userID]++
	s.mu.Unlock()
	if n := s.cache.InvalidateGroup(userID); n > 0 {
		slog.DebugContext(ctx, "Invalidated dashboard cache", "user_id", userID, "entries", n)
	}
}

func (s *TransactionService) publishCreated(ctx context.Context, tx core.Transaction) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping transaction event")
		return nil
	}
	return s.publisher.PublishTransactionCreated(ctx, tx)
}

// IsNotFound reports whether err means the record does not exist for this user.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage/memory"
	"fintrack/internal/store"
)

var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

type fakePublisher struct {
	published []core.Transaction
	err       error
}

func (f *fakePublisher) PublishTransactionCreated(_ context.Context, tx core.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, tx)
	return nil
}

type fakeSummaryCache struct {
	entries map[string]core.DashboardSummary
	groups  map[string][]string
	hits    int
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{
		entries: make(map[string]core.DashboardSummary),
		groups:  make(map[string][]string),
	}
}

func (f *fakeSummaryCache) Get(key string) (core.DashboardSummary, bool) {
	v, ok := f.entries[key]
	if ok {
		f.hits++
	}
	return v, ok
}

func (f *fakeSummaryCache) SetInGroup(group, key string, data core.DashboardSummary) {
	f.entries[key] = data
	f.groups[group] = append(f.groups[group], key)
}

func (f *fakeSummaryCache) InvalidateGroup(group string) int {
	keys := f.groups[group]
	for _, k := range keys {
		delete(f.entries, k)
	}
	delete(f.groups, group)
	return len(keys)
}

func expense(user, category string, cents int64, at time.Time) core.Transaction {
	return core.Transaction{
		UserID:      user,
		Amount:      core.MoneyFromCents(cents),
		Description: "test " + category,
		Category:    category,
		Kind:        core.KindExpense,
		Date:        at,
	}
}

func TestTransactionService_CreatePublishes(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewTransactionService(memory.New(), pub, nil, core.FixedClock{T: testNow})

	saved, err := svc.CreateTransaction(ctx, expense("u1", "Food", 1250, testNow))
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("CreateTransaction() should assign an id")
	}
	if len(pub.published) != 1 || pub.published[0].ID != saved.ID {
		t.Errorf("published = %v, want the saved transaction", pub.published)
	}
}

func TestTransactionService_PublishFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewTransactionService(memory.New(), pub, nil, core.FixedClock{T: testNow})

	if _, err := svc.CreateTransaction(ctx, expense("u1", "Food", 100, testNow)); err != nil {
		t.Fatalf("CreateTransaction() error = %v, want nil", err)
	}
}

func TestTransactionService_DefaultsDateToNow(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.New(), nil, nil, core.FixedClock{T: testNow})

	tx := expense("u1", "Food", 100, time.Time{})
	saved, err := svc.CreateTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if !saved.Date.Equal(testNow) {
		t.Errorf("Date = %v, want %v", saved.Date, testNow)
	}
}

func TestTransactionService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.New(), nil, nil, core.FixedClock{T: testNow})

	tx := expense("u1", "", 100, testNow)
	_, err := svc.CreateTransaction(ctx, tx)
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateTransaction() error = %v, want ValidationError", err)
	}
	if verr.Field != "category" {
		t.Errorf("Field = %q, want %q", verr.Field, "category")
	}
}

func TestTransactionService_SummaryCache(t *testing.T) {
	ctx := context.Background()
	cache := newFakeSummaryCache()
	svc := NewTransactionService(memory.New(), nil, cache, core.FixedClock{T: testNow})

	if _, err := svc.CreateTransaction(ctx, expense("u1", "Food", 1000, testNow)); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	first, err := svc.Summary(ctx, "u1")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if first.TotalExpenses.Cents() != 1000 {
		t.Errorf("TotalExpenses = %s, want 10.00", first.TotalExpenses)
	}
	if _, err := svc.Summary(ctx, "u1"); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}

	// A write drops the cached dashboard.
	if _, err := svc.CreateTransaction(ctx, expense("u1", "Food", 500, testNow)); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	after, err := svc.Summary(ctx, "u1")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if after.TotalExpenses.Cents() != 1500 {
		t.Errorf("TotalExpenses after write = %s, want 15.00", after.TotalExpenses)
	}
}

// racingStore commits one more expense right after the first list read, the
// way a concurrent request would between a Summary's read and its cache fill.
type racingStore struct {
	*memory.Store
	svc   *TransactionService
	write core.Transaction
	fired bool
}

func (r *racingStore) ListTransactions(ctx context.Context, userID string, f store.TransactionFilter) ([]core.Transaction, error) {
	txs, err := r.Store.ListTransactions(ctx, userID, f)
	if err != nil || r.fired {
		return txs, err
	}
	r.fired = true
	if _, err := r.svc.CreateTransaction(ctx, r.write); err != nil {
		return nil, err
	}
	return txs, nil
}

func TestTransactionService_SummaryNotCachedAcrossConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	cache := newFakeSummaryCache()
	rs := &racingStore{Store: memory.New(), write: expense("u1", "Food", 500, testNow)}
	svc := NewTransactionService(rs, nil, cache, core.FixedClock{T: testNow})
	rs.svc = svc

	if _, err := rs.Store.CreateTransaction(ctx, expense("u1", "Food", 1000, testNow)); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	stale, err := svc.Summary(ctx, "u1")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if stale.TotalExpenses.Cents() != 1000 {
		t.Fatalf("first Summary() TotalExpenses = %s, want 10.00", stale.TotalExpenses)
	}

	fresh, err := svc.Summary(ctx, "u1")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if fresh.TotalExpenses.Cents() != 1500 {
		t.Errorf("TotalExpenses after concurrent write = %s, want 15.00", fresh.TotalExpenses)
	}
	if cache.hits != 0 {
		t.Errorf("cache hits = %d, want 0", cache.hits)
	}
}

func TestTransactionService_DeleteScopedByUser(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.New(), nil, nil, core.FixedClock{T: testNow})

	saved, err := svc.CreateTransaction(ctx, expense("u1", "Food", 100, testNow))
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if err := svc.DeleteTransaction(ctx, "u2", saved.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteTransaction(other user) error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteTransaction(ctx, "u1", saved.ID); err != nil {
		t.Errorf("DeleteTransaction() error = %v", err)
	}
}

// Package memory is an in-process implementation of the store ports.
// All state lives in one Store value guarded by a mutex; nothing is shared
// through package variables.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

type Store struct {
	mu            sync.Mutex
	users         map[string]core.User
	transactions  map[string]core.Transaction
	budgets       map[string]core.Budget
	bills         map[string]core.Bill
	categories    map[string]core.Category
	notifications map[string]core.Notification
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:         map[string]core.User{},
		transactions:  map[string]core.Transaction{},
		budgets:       map[string]core.Budget{},
		bills:         map[string]core.Bill{},
		categories:    map[string]core.Category{},
		notifications: map[string]core.Notification{},
	}
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// Users

func (s *Store) CreateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return core.User{}, store.ErrDuplicate
		}
	}
	u.ID = newID(u.ID)
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return core.User{}, store.ErrNotFound
}

func (s *Store) ListUserIDs(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Transactions

func (s *Store) CreateTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = newID(tx.ID)
	tx.Tags = slices.Clone(tx.Tags)
	s.transactions[tx.ID] = tx
	return tx, nil
}

func (s *Store) GetTransaction(_ context.Context, userID, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[id]
	if !ok || tx.UserID != userID {
		return core.Transaction{}, store.ErrNotFound
	}
	tx.Tags = slices.Clone(tx.Tags)
	return tx, nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.transactions[tx.ID]
	if !ok || old.UserID != tx.UserID {
		return core.Transaction{}, store.ErrNotFound
	}
	tx.CreatedAt = old.CreatedAt
	tx.Tags = slices.Clone(tx.Tags)
	s.transactions[tx.ID] = tx
	return tx, nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[id]
	if !ok || tx.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) ListTransactions(_ context.Context, userID string, f store.TransactionFilter) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, tx := range s.transactions {
		if tx.UserID != userID {
			continue
		}
		if f.Kind != "" && tx.Kind != f.Kind {
			continue
		}
		if f.Category != "" && tx.Category != f.Category {
			continue
		}
		if !f.From.IsZero() && tx.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && tx.Date.After(f.To) {
			continue
		}
		tx.Tags = slices.Clone(tx.Tags)
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// Budgets

func (s *Store) budgetConflict(b core.Budget) bool {
	for id, other := range s.budgets {
		if id != b.ID && other.UserID == b.UserID && other.Category == b.Category && other.Period == b.Period {
			return true
		}
	}
	return false
}

func (s *Store) CreateBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = newID(b.ID)
	if s.budgetConflict(b) {
		return core.Budget{}, store.ErrDuplicate
	}
	s.budgets[b.ID] = b
	return b, nil
}

func (s *Store) GetBudget(_ context.Context, userID, id string) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return core.Budget{}, store.ErrNotFound
	}
	return b, nil
}

func (s *Store) UpdateBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.budgets[b.ID]
	if !ok || old.UserID != b.UserID {
		return core.Budget{}, store.ErrNotFound
	}
	if s.budgetConflict(b) {
		return core.Budget{}, store.ErrDuplicate
	}
	b.CreatedAt = old.CreatedAt
	s.budgets[b.ID] = b
	return b, nil
}

func (s *Store) DeleteBudget(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}

func (s *Store) ListBudgets(_ context.Context, userID string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Budget
	for _, b := range s.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Period < out[j].Period
	})
	return out, nil
}

// Bills

func cloneBill(b core.Bill) core.Bill {
	if b.PaidDate != nil {
		t := *b.PaidDate
		b.PaidDate = &t
	}
	return b
}

func (s *Store) CreateBill(_ context.Context, b core.Bill) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = newID(b.ID)
	b = cloneBill(b)
	s.bills[b.ID] = b
	return cloneBill(b), nil
}

func (s *Store) GetBill(_ context.Context, userID, id string) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[id]
	if !ok || b.UserID != userID {
		return core.Bill{}, store.ErrNotFound
	}
	return cloneBill(b), nil
}

func (s *Store) UpdateBill(_ context.Context, b core.Bill) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.bills[b.ID]
	if !ok || old.UserID != b.UserID {
		return core.Bill{}, store.ErrNotFound
	}
	b.CreatedAt = old.CreatedAt
	b = cloneBill(b)
	s.bills[b.ID] = b
	return cloneBill(b), nil
}

func (s *Store) DeleteBill(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[id]
	if !ok || b.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.bills, id)
	return nil
}

func (s *Store) ListBills(_ context.Context, userID string, f store.BillFilter) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Bill
	for _, b := range s.bills {
		if b.UserID != userID {
			continue
		}
		if f.Paid != nil && b.IsPaid != *f.Paid {
			continue
		}
		if !f.DueBefore.IsZero() && b.DueDate.After(f.DueBefore.Time) {
			continue
		}
		out = append(out, cloneBill(b))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate.Time) {
			return out[i].DueDate.Before(out[j].DueDate.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Categories

func (s *Store) categoryConflict(c core.Category) bool {
	for id, other := range s.categories {
		if id != c.ID && other.UserID == c.UserID && other.Name == c.Name {
			return true
		}
	}
	return false
}

func (s *Store) CreateCategory(_ context.Context, c core.Category) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = newID(c.ID)
	if s.categoryConflict(c) {
		return core.Category{}, store.ErrDuplicate
	}
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) GetCategory(_ context.Context, userID, id string) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return core.Category{}, store.ErrNotFound
	}
	return c, nil
}

func (s *Store) UpdateCategory(_ context.Context, c core.Category) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.categories[c.ID]
	if !ok || old.UserID != c.UserID {
		return core.Category{}, store.ErrNotFound
	}
	if s.categoryConflict(c) {
		return core.Category{}, store.ErrDuplicate
	}
	c.CreatedAt = old.CreatedAt
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) DeleteCategory(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) ListCategories(_ context.Context, userID string) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Notifications

func (s *Store) CreateNotification(_ context.Context, n core.Notification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.DedupeKey != "" {
		for _, other := range s.notifications {
			if other.UserID == n.UserID && other.DedupeKey == n.DedupeKey {
				return false, nil
			}
		}
	}
	n.ID = newID(n.ID)
	s.notifications[n.ID] = n
	return true, nil
}

func (s *Store) ListNotifications(_ context.Context, userID string, f store.NotificationFilter) ([]core.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Notification
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		if f.UnreadOnly && n.Read {
			continue
		}
		if len(f.Types) > 0 && !slices.Contains(f.Types, n.Type) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) CountUnread(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *Store) MarkRead(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return store.ErrNotFound
	}
	n.Read = true
	s.notifications[id] = n
	return nil
}

func (s *Store) MarkAllRead(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			s.notifications[id] = n
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteNotification(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}

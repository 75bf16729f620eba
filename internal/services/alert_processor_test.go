package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage/memory"
	"fintrack/internal/store"
)

type mutableClock struct {
	t time.Time
}

func (c *mutableClock) Now() time.Time { return c.t }

func seedAlertUser(t *testing.T, s *memory.Store) string {
	t.Helper()
	u, err := s.CreateUser(context.Background(), core.User{Email: "a@example.com", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return u.ID
}

func TestAlertProcessor_BudgetAlertsDeduplicated(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	user := seedAlertUser(t, s)
	clock := &mutableClock{t: testNow}

	if _, err := s.CreateBudget(ctx, core.Budget{
		UserID: user, Category: "Food", Limit: core.MustMoney("100"),
		Period: core.Monthly, AlertThreshold: 80, IsActive: true,
	}); err != nil {
		t.Fatalf("CreateBudget() error = %v", err)
	}
	if _, err := s.CreateTransaction(ctx, expense(user, "Food", 8500, testNow)); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	p := NewAlertProcessor(s, clock, DefaultAlertProcessorConfig())

	stats, err := p.ProcessAll(ctx)
	if err != nil {
		t.Fatalf("ProcessAll() error = %v", err)
	}
	if stats.Users != 1 || stats.Created != 1 {
		t.Fatalf("ProcessAll() = %+v, want 1 user and 1 notification", stats)
	}

	// Same state, same window: nothing new.
	again, err := p.ProcessAll(ctx)
	if err != nil {
		t.Fatalf("second ProcessAll() error = %v", err)
	}
	if again.Created != 0 {
		t.Errorf("second ProcessAll() created %d, want 0", again.Created)
	}

	// Crossing the limit is a new status and earns its own alert.
	if _, err := s.CreateTransaction(ctx, expense(user, "Food", 2000, testNow)); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	over, err := p.ProcessUser(ctx, user)
	if err != nil {
		t.Fatalf("ProcessUser() error = %v", err)
	}
	if over != 1 {
		t.Errorf("ProcessUser() after overspend created %d, want 1", over)
	}

	list, err := s.ListNotifications(ctx, user, store.NotificationFilter{})
	if err != nil {
		t.Fatalf("ListNotifications() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("notifications = %d, want 2", len(list))
	}
	priorities := map[core.Priority]bool{}
	for _, n := range list {
		if n.Type != core.NotifyBudgetAlert {
			t.Errorf("Type = %s, want %s", n.Type, core.NotifyBudgetAlert)
		}
		priorities[n.Priority] = true
	}
	if !priorities[core.PriorityMedium] || !priorities[core.PriorityHigh] {
		t.Errorf("priorities = %v, want medium and high", priorities)
	}
}

func TestAlertProcessor_InactiveBudgetIgnored(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	user := seedAlertUser(t, s)

	if _, err := s.CreateBudget(ctx, core.Budget{
		UserID: user, Category: "Food", Limit: core.MustMoney("10"),
		Period: core.Daily, AlertThreshold: 80, IsActive: false,
	}); err != nil {
		t.Fatalf("CreateBudget() error = %v", err)
	}
	if _, err := s.CreateTransaction(ctx, expense(user, "Food", 5000, testNow)); err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	p := NewAlertProcessor(s, core.FixedClock{T: testNow}, DefaultAlertProcessorConfig())
	n, err := p.ProcessUser(ctx, user)
	if err != nil {
		t.Fatalf("ProcessUser() error = %v", err)
	}
	if n != 0 {
		t.Errorf("ProcessUser() created %d, want 0", n)
	}
}

func TestAlertProcessor_BillReminders(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	user := seedAlertUser(t, s)
	clock := &mutableClock{t: testNow}

	bills := []struct {
		name string
		due  core.Date
		paid bool
	}{
		{"Overdue", core.NewDate(2025, 3, 10), false},
		{"Today", core.NewDate(2025, 3, 15), false},
		{"Soon", core.NewDate(2025, 3, 18), false},
		{"Later", core.NewDate(2025, 4, 30), false},
		{"Paid", core.NewDate(2025, 3, 14), true},
	}
	for _, b := range bills {
		bill := newBill(user, b.name, b.due)
		bill.ApplyDefaults()
		if b.paid {
			bill.IsPaid = true
			paidAt := testNow
			bill.PaidDate = &paidAt
		}
		if _, err := s.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill(%s) error = %v", b.name, err)
		}
	}

	p := NewAlertProcessor(s, clock, DefaultAlertProcessorConfig())
	n, err := p.ProcessUser(ctx, user)
	if err != nil {
		t.Fatalf("ProcessUser() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("ProcessUser() created %d, want 3", n)
	}

	list, _ := s.ListNotifications(ctx, user, store.NotificationFilter{Types: []core.NotificationType{core.NotifyBillReminder}})
	want := map[string]core.Priority{
		"Overdue is overdue": core.PriorityHigh,
		"Today is due today": core.PriorityHigh,
		"Soon is due soon":   core.PriorityMedium,
	}
	for _, got := range list {
		prio, ok := want[got.Title]
		if !ok {
			t.Errorf("unexpected notification %q", got.Title)
			continue
		}
		if got.Priority != prio {
			t.Errorf("%q priority = %s, want %s", got.Title, got.Priority, prio)
		}
	}

	// Next day the overdue bill gets a fresh reminder, the others change status too.
	clock.t = testNow.AddDate(0, 0, 1)
	next, err := p.ProcessUser(ctx, user)
	if err != nil {
		t.Fatalf("ProcessUser() next day error = %v", err)
	}
	if next != 3 {
		t.Errorf("ProcessUser() next day created %d, want 3", next)
	}
}

func TestAlertProcessor_CheckCategory(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	user := seedAlertUser(t, s)

	for _, cat := range []string{"Food", "Travel"} {
		if _, err := s.CreateBudget(ctx, core.Budget{
			UserID: user, Category: cat, Limit: core.MustMoney("10"),
			Period: core.Weekly, AlertThreshold: 80, IsActive: true,
		}); err != nil {
			t.Fatalf("CreateBudget() error = %v", err)
		}
		if _, err := s.CreateTransaction(ctx, expense(user, cat, 2000, testNow)); err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}
	}

	p := NewAlertProcessor(s, core.FixedClock{T: testNow}, DefaultAlertProcessorConfig())
	n, err := p.CheckCategory(ctx, user, "Food")
	if err != nil {
		t.Fatalf("CheckCategory() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("CheckCategory() created %d, want 1", n)
	}
	list, _ := s.ListNotifications(ctx, user, store.NotificationFilter{})
	if len(list) != 1 || list[0].Type != core.NotifySpendingWarning || list[0].Priority != core.PriorityHigh {
		t.Errorf("notifications = %+v, want one high spending_warning", list)
	}
}

func TestAlertProcessor_StartStop(t *testing.T) {
	p := NewAlertProcessor(memory.New(), core.FixedClock{T: testNow}, AlertProcessorConfig{Interval: time.Hour})
	ctx := context.Background()

	if p.IsRunning() {
		t.Fatal("processor should not be running initially")
	}
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := p.Start(ctx); err == nil {
		t.Error("expected error when starting already running processor")
	}

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if p.IsRunning() {
		t.Error("processor should not be running after Stop")
	}
	if err := p.Stop(stopCtx); err != nil {
		t.Errorf("Stop should not error when not running: %v", err)
	}
}

// blockingUsers holds every sweep inside ListUserIDs until release is closed.
type blockingUsers struct {
	*memory.Store
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingUsers) ListUserIDs(ctx context.Context) ([]string, error) {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return b.Store.ListUserIDs(ctx)
}

func TestAlertProcessor_StopAfterTimeout(t *testing.T) {
	st := &blockingUsers{Store: memory.New(), entered: make(chan struct{}), release: make(chan struct{})}
	p := NewAlertProcessor(st, core.FixedClock{T: testNow}, AlertProcessorConfig{Interval: time.Hour})
	ctx := context.Background()

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	<-st.entered

	expired, cancel := context.WithCancel(ctx)
	cancel()
	if err := p.Stop(expired); !errors.Is(err, context.Canceled) {
		t.Fatalf("Stop() error = %v, want context.Canceled", err)
	}
	if p.IsRunning() {
		t.Error("processor should not report running after a timed out Stop")
	}
	if err := p.Stop(expired); err != nil {
		t.Errorf("second Stop() error = %v, want nil", err)
	}

	close(st.release)
	if err := p.Start(ctx); err != nil {
		t.Fatalf("restart error = %v", err)
	}
	stopCtx, stop := context.WithTimeout(ctx, 2*time.Second)
	defer stop()
	if err := p.Stop(stopCtx); err != nil {
		t.Errorf("Stop() after restart error = %v", err)
	}
}

func TestDefaultAlertProcessorConfig(t *testing.T) {
	if got := DefaultAlertProcessorConfig().Interval; got != 15*time.Minute {
		t.Errorf("Interval = %v, want 15m", got)
	}
}

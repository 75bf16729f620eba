package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// AlertProcessorConfig holds configuration for the alert sweep
type AlertProcessorConfig struct {
	// Interval is how often every user is swept (default: 15m)
	Interval time.Duration
}

// DefaultAlertProcessorConfig returns sensible defaults
func DefaultAlertProcessorConfig() AlertProcessorConfig {
	return AlertProcessorConfig{Interval: 15 * time.Minute}
}

// AlertStats summarizes one sweep.
type AlertStats struct {
	Users   int
	Created int
	Failed  int
}

// AlertProcessor turns budget and bill states into notifications. Every
// notification carries a dedupe key, so running a sweep twice creates nothing new.
type AlertProcessor struct {
	users         store.UserStore
	budgets       store.BudgetStore
	bills         store.BillStore
	notifications store.NotificationStore
	evaluator     *BudgetService
	clock         core.Clock
	config        AlertProcessorConfig

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewAlertProcessor creates an alert processor over a full store.
func NewAlertProcessor(s store.Store, clock core.Clock, config AlertProcessorConfig) *AlertProcessor {
	return &AlertProcessor{
		users:         s,
		budgets:       s,
		bills:         s,
		notifications: s,
		evaluator:     NewBudgetService(s, s, clock),
		clock:         clock,
		config:        config,
	}
}

// Start begins the sweep loop. Returns an error if already running.
func (p *AlertProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("alert processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx, p.stopCh, p.doneCh)

	slog.InfoContext(ctx, "Alert processor started", "interval", p.config.Interval)
	return nil
}

// Stop stops the loop and waits for the sweep in progress to finish. The
// loop is marked stopped before waiting, so a Stop that times out can be
// followed by another Stop or a fresh Start.
func (p *AlertProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	stopCh, doneCh := p.stopCh, p.doneCh
	p.mu.Unlock()

	close(stopCh)

	select {
	case <-doneCh:
		slog.InfoContext(ctx, "Alert processor stopped gracefully")
		return nil
	case <-ctx.Done():
		slog.WarnContext(ctx, "Alert processor stop timed out")
		return ctx.Err()
	}
}

// IsRunning returns whether the processor is currently running
func (p *AlertProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *AlertProcessor) runLoop(ctx context.Context, stopCh <-chan struct{}, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup
	p.sweep(ctx)

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

func (p *AlertProcessor) sweep(ctx context.Context) {
	if _, err := p.ProcessAll(ctx); err != nil {
		slog.ErrorContext(ctx, "Alert sweep failed", "error", err)
	}
}

// ProcessAll checks every user's budgets and bills. A failing user is
// logged and skipped.
func (p *AlertProcessor) ProcessAll(ctx context.Context) (AlertStats, error) {
	ids, err := p.users.ListUserIDs(ctx)
	if err != nil {
		return AlertStats{}, fmt.Errorf("failed to list users: %w", err)
	}

	stats := AlertStats{Users: len(ids)}
	for _, id := range ids {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		n, err := p.ProcessUser(ctx, id)
		stats.Created += n
		if err != nil {
			stats.Failed++
			slog.ErrorContext(ctx, "Failed to process alerts for user",
				"user_id", id,
				"error", err)
			continue
		}
	}

	slog.InfoContext(ctx, "Alert sweep complete",
		"users", stats.Users,
		"created", stats.Created,
		"failed", stats.Failed)
	return stats, nil
}

// ProcessUser creates the budget and bill notifications due for one user
// and returns how many were new.
func (p *AlertProcessor) ProcessUser(ctx context.Context, userID string) (int, error) {
	budgets, err := p.budgets.ListBudgets(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list budgets: %w", err)
	}
	created := p.checkBudgets(ctx, budgets, core.NotifyBudgetAlert)

	unpaid := false
	bills, err := p.bills.ListBills(ctx, userID, store.BillFilter{Paid: &unpaid})
	if err != nil {
		return created, fmt.Errorf("list bills: %w", err)
	}
	today := core.Today(p.clock)
	for _, b := range bills {
		n, ok := billNotification(b, core.ClassifyBill(b, today), today)
		if !ok {
			continue
		}
		if p.notify(ctx, n) {
			created++
		}
	}
	return created, nil
}

// CheckCategory re-evaluates the user's budgets on one category right after
// spending was recorded and raises spending warnings.
func (p *AlertProcessor) CheckCategory(ctx context.Context, userID, category string) (int, error) {
	budgets, err := p.budgets.ListBudgets(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list budgets: %w", err)
	}
	matching := budgets[:0:0]
	for _, b := range budgets {
		if b.Category == category {
			matching = append(matching, b)
		}
	}
	return p.checkBudgets(ctx, matching, core.NotifySpendingWarning), nil
}

func (p *AlertProcessor) checkBudgets(ctx context.Context, budgets []core.Budget, kind core.NotificationType) int {
	created := 0
	for _, b := range budgets {
		if !b.IsActive {
			continue
		}
		ev, err := p.evaluator.Evaluate(ctx, b)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to evaluate budget",
				"budget_id", b.ID,
				"error", err)
			continue
		}
		n, ok := budgetNotification(b, ev, kind)
		if !ok {
			continue
		}
		if p.notify(ctx, n) {
			created++
		}
	}
	return created
}

func (p *AlertProcessor) notify(ctx context.Context, n core.Notification) bool {
	n.CreatedAt = p.clock.Now()
	if err := n.Validate(); err != nil {
		slog.ErrorContext(ctx, "Refusing invalid notification",
			"dedupe_key", n.DedupeKey,
			"error", err)
		return false
	}
	created, err := p.notifications.CreateNotification(ctx, n)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create notification",
			"user_id", n.UserID,
			"dedupe_key", n.DedupeKey,
			"error", err)
		return false
	}
	if created {
		slog.InfoContext(ctx, "Created notification",
			"user_id", n.UserID,
			"type", n.Type,
			"related_id", n.RelatedID)
	}
	return created
}

// budgetNotification builds the alert for a budget at or over its threshold.
// One is allowed per budget, status and window.
func budgetNotification(b core.Budget, ev core.BudgetEvaluation, kind core.NotificationType) (core.Notification, bool) {
	n := core.Notification{
		UserID:    b.UserID,
		Type:      kind,
		RelatedID: b.ID,
		DedupeKey: fmt.Sprintf("budget:%s:%s:%s", b.ID, ev.Status, ev.WindowStart.Format("2006-01-02")),
	}
	switch ev.Status {
	case core.BudgetOver:
		n.Priority = core.PriorityHigh
		n.Title = fmt.Sprintf("%s budget exceeded", b.Category)
		n.Message = fmt.Sprintf("You have spent %s of your %s %s %s budget.",
			ev.Spent, b.Limit, b.Period, b.Category)
	case core.BudgetNearLimit:
		n.Priority = core.PriorityMedium
		n.Title = fmt.Sprintf("%s budget nearly used", b.Category)
		n.Message = fmt.Sprintf("You have used %s of your %s %s %s budget.",
			percentText(ev.Percentage), b.Limit, b.Period, b.Category)
	default:
		return core.Notification{}, false
	}
	n.Title = truncate(n.Title, core.MaxNotificationTitle)
	n.Message = truncate(n.Message, core.MaxNotificationMessage)
	return n, true
}

// billNotification builds the reminder for an unpaid bill that needs attention.
// One is allowed per bill, status and day.
func billNotification(b core.Bill, c core.BillClassification, today core.Date) (core.Notification, bool) {
	n := core.Notification{
		UserID:    b.UserID,
		Type:      core.NotifyBillReminder,
		RelatedID: b.ID,
		DedupeKey: fmt.Sprintf("bill:%s:%s:%s", b.ID, c.Status, today),
		Message:   fmt.Sprintf("%s (%s) is %s.", b.Name, b.Amount, lowerFirst(c.StatusText())),
	}
	switch c.Status {
	case core.BillOverdue:
		n.Priority = core.PriorityHigh
		n.Title = fmt.Sprintf("%s is overdue", b.Name)
	case core.BillDueToday:
		n.Priority = core.PriorityHigh
		n.Title = fmt.Sprintf("%s is due today", b.Name)
	case core.BillDueSoon:
		n.Priority = core.PriorityMedium
		n.Title = fmt.Sprintf("%s is due soon", b.Name)
	default:
		return core.Notification{}, false
	}
	n.Title = truncate(n.Title, core.MaxNotificationTitle)
	n.Message = truncate(n.Message, core.MaxNotificationMessage)
	return n, true
}

func percentText(p *float64) string {
	if p == nil {
		return "all"
	}
	return fmt.Sprintf("%.0f%%", *p)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

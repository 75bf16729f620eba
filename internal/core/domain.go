package core

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"
)

const (
	RecurNone    Recurrence = "none"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
	RecurYearly  Recurrence = "yearly"
)

const (
	CategoryExpense CategoryType = "expense"
	CategoryIncome  CategoryType = "income"
	CategoryBoth    CategoryType = "both"
)

const (
	NotifyBudgetAlert     NotificationType = "budget_alert"
	NotifyBillReminder    NotificationType = "bill_reminder"
	NotifySpendingWarning NotificationType = "spending_warning"
	NotifyAchievement     NotificationType = "achievement"
	NotifyInfo            NotificationType = "info"
)

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Field limits shared by validation and the HTTP layer.
const (
	MaxDescriptionLen      = 200
	MaxBillNameLen         = 100
	MaxNotesLen            = 500
	MaxCategoryNameLen     = 50
	MaxNotificationTitle   = 100
	MaxNotificationMessage = 500
	MinPasswordLen         = 8

	DefaultAlertThreshold = 80
	DefaultReminderDays   = 3
)

type (
	// Period is the length of a budget's spending window.
	Period string

	// TransactionKind tells expenses and income apart.
	TransactionKind string

	// Recurrence is informational; bills are not rolled forward automatically.
	Recurrence string

	CategoryType     string
	NotificationType string
	Priority         string

	User struct {
		ID           string    `json:"id"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"-"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	Transaction struct {
		ID          string          `json:"id"`
		UserID      string          `json:"-"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Kind        TransactionKind `json:"type"`
		Date        time.Time       `json:"date"`
		Tags        []string        `json:"tags"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	// Budget is a spending limit on one category over a rolling period.
	Budget struct {
		ID             string    `json:"id"`
		UserID         string    `json:"-"`
		Category       string    `json:"category"`
		Limit          Money     `json:"limit"`
		Period         Period    `json:"period"`
		AlertThreshold int       `json:"alertThreshold"`
		IsActive       bool      `json:"isActive"`
		CreatedAt      time.Time `json:"createdAt"`
		UpdatedAt      time.Time `json:"updatedAt"`
	}

	Vendor struct {
		Name    string `json:"name,omitempty"`
		Website string `json:"website,omitempty"`
		Phone   string `json:"phone,omitempty"`
	}

	// Bill is a payment reminder. PaidDate is set iff IsPaid.
	Bill struct {
		ID            string     `json:"id"`
		UserID        string     `json:"-"`
		Name          string     `json:"name"`
		Amount        Money      `json:"amount"`
		DueDate       Date       `json:"dueDate"`
		Category      string     `json:"category"`
		Recurring     Recurrence `json:"recurring"`
		ReminderDays  int        `json:"reminderDays"`
		IsPaid        bool       `json:"isPaid"`
		PaidDate      *time.Time `json:"paidDate"`
		Notes         string     `json:"notes,omitempty"`
		PaymentMethod string     `json:"paymentMethod,omitempty"`
		Vendor        Vendor     `json:"vendor"`
		CreatedAt     time.Time  `json:"createdAt"`
		UpdatedAt     time.Time  `json:"updatedAt"`
	}

	Category struct {
		ID        string       `json:"id"`
		UserID    string       `json:"-"`
		Name      string       `json:"name"`
		Color     string       `json:"color"`
		Icon      string       `json:"icon"`
		Type      CategoryType `json:"type"`
		IsDefault bool         `json:"isDefault"`
		CreatedAt time.Time    `json:"createdAt"`
	}

	// Notification is an in-app message. DedupeKey is unique per user so
	// repeated alert sweeps never produce the same notification twice.
	Notification struct {
		ID        string           `json:"id"`
		UserID    string           `json:"-"`
		Type      NotificationType `json:"type"`
		Title     string           `json:"title"`
		Message   string           `json:"message"`
		Priority  Priority         `json:"priority"`
		Read      bool             `json:"read"`
		RelatedID string           `json:"relatedId,omitempty"`
		DedupeKey string           `json:"-"`
		CreatedAt time.Time        `json:"createdAt"`
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyDescription    = errors.New("empty description")
	ErrEmptyCategory       = errors.New("empty category")
	ErrInvalidKind         = errors.New("invalid transaction type")
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrInvalidThreshold    = errors.New("alert threshold must be between 1 and 100")
	ErrInvalidReminderDays = errors.New("reminder days must be between 1 and 30")
	ErrInvalidRecurrence   = errors.New("invalid recurring value")
	ErrEmptyName           = errors.New("empty name")
	ErrInvalidColor        = errors.New("invalid color")
	ErrInvalidCategoryType = errors.New("invalid category type")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrWeakPassword        = errors.New("password must be at least 8 characters")
	ErrPaidDateMismatch    = errors.New("paid date must be set exactly when the bill is paid")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrInvalidNotification = errors.New("invalid notification type")
)

// ValidationError marks errors that come from input validation.
// Callers use errors.As to map them to a client error.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

var colorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

func (p Period) Valid() bool {
	switch p {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

func (k TransactionKind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

func (r Recurrence) Valid() bool {
	switch r {
	case RecurNone, RecurWeekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

func (c CategoryType) Valid() bool {
	switch c {
	case CategoryExpense, CategoryIncome, CategoryBoth:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (n NotificationType) Valid() bool {
	switch n {
	case NotifyBudgetAlert, NotifyBillReminder, NotifySpendingWarning, NotifyAchievement, NotifyInfo:
		return true
	}
	return false
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return invalid("amount", err)
	}
	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		return invalid("description", ErrEmptyDescription)
	}
	if len(desc) > MaxDescriptionLen {
		return invalid("description", errors.New("description too long (max 200 characters)"))
	}
	if strings.TrimSpace(t.Category) == "" {
		return invalid("category", ErrEmptyCategory)
	}
	if !t.Kind.Valid() {
		return invalid("type", ErrInvalidKind)
	}
	if t.Date.IsZero() {
		return invalid("date", errors.New("date cannot be zero"))
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return invalid("category", ErrEmptyCategory)
	}
	if err := b.Limit.Validate(); err != nil {
		return invalid("limit", err)
	}
	if !b.Period.Valid() {
		return invalid("period", ErrInvalidPeriod)
	}
	if b.AlertThreshold < 1 || b.AlertThreshold > 100 {
		return invalid("alertThreshold", ErrInvalidThreshold)
	}
	return nil
}

// ApplyDefaults fills Recurring when omitted. ReminderDays has no zero-value
// default: 0 is out of range and must reach Validate.
func (b *Bill) ApplyDefaults() {
	if b.Recurring == "" {
		b.Recurring = RecurNone
	}
}

func (b Bill) Validate() error {
	name := strings.TrimSpace(b.Name)
	if name == "" {
		return invalid("name", ErrEmptyName)
	}
	if len(name) > MaxBillNameLen {
		return invalid("name", errors.New("name too long (max 100 characters)"))
	}
	if err := b.Amount.Validate(); err != nil {
		return invalid("amount", err)
	}
	if err := b.DueDate.Validate(); err != nil {
		return invalid("dueDate", err)
	}
	if strings.TrimSpace(b.Category) == "" {
		return invalid("category", ErrEmptyCategory)
	}
	if !b.Recurring.Valid() {
		return invalid("recurring", ErrInvalidRecurrence)
	}
	if b.ReminderDays < 1 || b.ReminderDays > 30 {
		return invalid("reminderDays", ErrInvalidReminderDays)
	}
	if len(b.Notes) > MaxNotesLen {
		return invalid("notes", errors.New("notes too long (max 500 characters)"))
	}
	if b.IsPaid != (b.PaidDate != nil) {
		return invalid("paidDate", ErrPaidDateMismatch)
	}
	return nil
}

func (c Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return invalid("name", ErrEmptyName)
	}
	if len(name) > MaxCategoryNameLen {
		return invalid("name", errors.New("name too long (max 50 characters)"))
	}
	if !colorPattern.MatchString(c.Color) {
		return invalid("color", ErrInvalidColor)
	}
	if strings.TrimSpace(c.Icon) == "" {
		return invalid("icon", errors.New("empty icon"))
	}
	if !c.Type.Valid() {
		return invalid("type", ErrInvalidCategoryType)
	}
	return nil
}

func (n Notification) Validate() error {
	if !n.Type.Valid() {
		return invalid("type", ErrInvalidNotification)
	}
	title := strings.TrimSpace(n.Title)
	if title == "" || len(title) > MaxNotificationTitle {
		return invalid("title", errors.New("title must be 1 to 100 characters"))
	}
	msg := strings.TrimSpace(n.Message)
	if msg == "" || len(msg) > MaxNotificationMessage {
		return invalid("message", errors.New("message must be 1 to 500 characters"))
	}
	if !n.Priority.Valid() {
		return invalid("priority", ErrInvalidPriority)
	}
	return nil
}

// ValidateCredentials checks a registration request.
func ValidateCredentials(email, password string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email", ErrInvalidEmail)
	}
	if len(password) < MinPasswordLen {
		return invalid("password", ErrWeakPassword)
	}
	return nil
}

// DefaultCategories are seeded for a user the first time they list categories.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Food & Dining", Color: "#ef4444", Icon: "🍽️", Type: CategoryExpense, IsDefault: true},
		{Name: "Transportation", Color: "#3b82f6", Icon: "🚗", Type: CategoryExpense, IsDefault: true},
		{Name: "Shopping", Color: "#f59e0b", Icon: "🛒", Type: CategoryExpense, IsDefault: true},
		{Name: "Entertainment", Color: "#8b5cf6", Icon: "🎬", Type: CategoryExpense, IsDefault: true},
		{Name: "Bills & Utilities", Color: "#06b6d4", Icon: "💡", Type: CategoryExpense, IsDefault: true},
		{Name: "Health & Fitness", Color: "#10b981", Icon: "💊", Type: CategoryExpense, IsDefault: true},
		{Name: "Travel", Color: "#f97316", Icon: "✈️", Type: CategoryExpense, IsDefault: true},
		{Name: "Education", Color: "#6366f1", Icon: "📚", Type: CategoryExpense, IsDefault: true},
		{Name: "Salary", Color: "#22c55e", Icon: "💰", Type: CategoryIncome, IsDefault: true},
		{Name: "Freelance", Color: "#84cc16", Icon: "💻", Type: CategoryIncome, IsDefault: true},
	}
}

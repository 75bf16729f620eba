package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage/memory"
)

var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

type testServer struct {
	srv    *Server
	store  *memory.Store
	issuer *auth.Issuer
}

func newTestServer(t *testing.T, rateLimit int) *testServer {
	t.Helper()
	st := memory.New()
	clock := core.FixedClock{T: testNow}
	issuer := auth.NewIssuer("test-secret-0123456789", time.Hour)

	srv := NewServer(Config{
		Addr:               ":0",
		Logger:             log.New(log.Config{Output: &bytes.Buffer{}}),
		Tokens:             issuer,
		Clock:              clock,
		RateLimitPerMinute: rateLimit,
		Ready:              st.Ping,
	}, Services{
		Users:         services.NewUserService(st, issuer, clock),
		Transactions:  services.NewTransactionService(st, nil, nil, clock),
		Budgets:       services.NewBudgetService(st, st, clock),
		Bills:         services.NewBillService(st, clock),
		Categories:    services.NewCategoryService(st, clock),
		Notifications: services.NewNotificationService(st),
	})
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return &testServer{srv: srv, store: st, issuer: issuer}
}

// do sends a JSON request and decodes the JSON response body.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.srv.Handler.ServeHTTP(rec, req)

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: response is not JSON: %q", method, path, rec.Body.String())
	}
	return rec.Code, out
}

func (ts *testServer) register(t *testing.T, email string) string {
	t.Helper()
	code, body := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "password123",
	})
	if code != http.StatusCreated {
		t.Fatalf("register %s status = %d, body %v", email, code, body)
	}
	return body["token"].(string)
}

func (ts *testServer) userID(t *testing.T, token string) string {
	t.Helper()
	id, err := ts.issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	return id
}

func field(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := body[key].(map[string]any)
	if !ok {
		t.Fatalf("response field %q = %v, want object", key, body[key])
	}
	return v
}

func TestHealthAndReady(t *testing.T) {
	ts := newTestServer(t, 100)

	for _, path := range []string{"/healthz", "/readyz"} {
		code, body := ts.do(t, http.MethodGet, path, "", nil)
		if code != http.StatusOK {
			t.Errorf("%s status = %d, want 200 (%v)", path, code, body)
		}
	}

	ts.srv.ready = func(context.Context) error { return errors.New("db gone") }
	code, body := ts.do(t, http.MethodGet, "/readyz", "", nil)
	if code != http.StatusServiceUnavailable || body["status"] != "not_ready" {
		t.Errorf("/readyz with failing store = %d %v, want 503 not_ready", code, body)
	}
}

func TestUnknownRouteIsJSON(t *testing.T) {
	ts := newTestServer(t, 100)
	code, body := ts.do(t, http.MethodGet, "/nope", "", nil)
	if code != http.StatusNotFound || body["success"] != false {
		t.Errorf("GET /nope = %d %v, want 404 envelope", code, body)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t, 100)

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := ts.do(t, http.MethodGet, "/api/transactions", tt.token, nil)
			if code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", code)
			}
			if body["message"] != "No token, authorization denied" {
				t.Errorf("message = %v", body["message"])
			}
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t, 100)
	ts.register(t, "ada@example.com")

	tests := []struct {
		name     string
		path     string
		email    string
		password string
		want     int
		message  string
	}{
		{"duplicate email", "/api/auth/register", "ADA@example.com", "password123", http.StatusBadRequest, "User already exists"},
		{"weak password", "/api/auth/register", "bob@example.com", "short", http.StatusBadRequest, ""},
		{"bad email", "/api/auth/register", "not-an-email", "password123", http.StatusBadRequest, ""},
		{"wrong password", "/api/auth/login", "ada@example.com", "wrong-password", http.StatusUnauthorized, "Invalid credentials"},
		{"unknown user", "/api/auth/login", "eve@example.com", "password123", http.StatusUnauthorized, "Invalid credentials"},
		{"valid login", "/api/auth/login", "ada@example.com", "password123", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := ts.do(t, http.MethodPost, tt.path, "", map[string]string{
				"email": tt.email, "password": tt.password,
			})
			if code != tt.want {
				t.Fatalf("status = %d, want %d (%v)", code, tt.want, body)
			}
			if tt.message != "" && body["message"] != tt.message {
				t.Errorf("message = %v, want %q", body["message"], tt.message)
			}
			if code == http.StatusOK && body["token"] == "" {
				t.Error("login returned no token")
			}
		})
	}
}

func TestTransactionLifecycle(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "ada@example.com")

	code, body := ts.do(t, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount": 12.5, "description": "Groceries", "category": "Food", "type": "expense", "date": "2025-03-14",
	})
	if code != http.StatusCreated {
		t.Fatalf("create status = %d (%v)", code, body)
	}
	tx := field(t, body, "transaction")
	id := tx["id"].(string)
	if tx["amount"] != 12.5 || tx["type"] != "expense" {
		t.Errorf("created transaction = %v", tx)
	}

	code, body = ts.do(t, http.MethodGet, "/api/transactions?type=expense&from=2025-03-01&to=2025-03-14", token, nil)
	if code != http.StatusOK || body["count"] != float64(1) {
		t.Errorf("list = %d %v, want one transaction", code, body)
	}
	code, body = ts.do(t, http.MethodGet, "/api/transactions?type=income", token, nil)
	if code != http.StatusOK || body["count"] != float64(0) {
		t.Errorf("income list = %d %v, want none", code, body)
	}

	code, body = ts.do(t, http.MethodPut, "/api/transactions/"+id, token, map[string]any{"description": "Weekly groceries"})
	if code != http.StatusOK {
		t.Fatalf("update status = %d (%v)", code, body)
	}
	tx = field(t, body, "transaction")
	if tx["description"] != "Weekly groceries" || tx["amount"] != 12.5 {
		t.Errorf("partial update lost fields: %v", tx)
	}

	code, _ = ts.do(t, http.MethodDelete, "/api/transactions/"+id, token, nil)
	if code != http.StatusOK {
		t.Errorf("delete status = %d", code)
	}
	code, body = ts.do(t, http.MethodGet, "/api/transactions/"+id, token, nil)
	if code != http.StatusNotFound || body["message"] != "Transaction not found" {
		t.Errorf("get deleted = %d %v, want 404", code, body)
	}
}

func TestTransactionValidation(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "ada@example.com")

	tests := []struct {
		name string
		path string
		body any
	}{
		{"missing amount", "/api/transactions", map[string]any{"description": "x", "category": "Food"}},
		{"negative amount", "/api/transactions", map[string]any{"amount": -1, "description": "x", "category": "Food"}},
		{"bad type", "/api/transactions", map[string]any{"amount": 1, "description": "x", "category": "Food", "type": "gift"}},
		{"bad date", "/api/transactions", map[string]any{"amount": 1, "description": "x", "category": "Food", "date": "14/03/2025"}},
		{"empty description", "/api/transactions", map[string]any{"amount": 1, "description": "  ", "category": "Food"}},
		{"not an object", "/api/transactions", "just a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := ts.do(t, http.MethodPost, tt.path, token, tt.body)
			if code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (%v)", code, body)
			}
		})
	}

	code, _ := ts.do(t, http.MethodGet, "/api/transactions?limit=zero", token, nil)
	if code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", code)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	ts := newTestServer(t, 100)
	alice := ts.register(t, "alice@example.com")
	bob := ts.register(t, "bob@example.com")

	_, body := ts.do(t, http.MethodPost, "/api/transactions", alice, map[string]any{
		"amount": 5, "description": "Coffee", "category": "Food",
	})
	id := field(t, body, "transaction")["id"].(string)

	if code, _ := ts.do(t, http.MethodGet, "/api/transactions/"+id, bob, nil); code != http.StatusNotFound {
		t.Errorf("bob reading alice's transaction = %d, want 404", code)
	}
	if code, _ := ts.do(t, http.MethodDelete, "/api/transactions/"+id, bob, nil); code != http.StatusNotFound {
		t.Errorf("bob deleting alice's transaction = %d, want 404", code)
	}
	if _, body := ts.do(t, http.MethodGet, "/api/transactions", bob, nil); body["count"] != float64(0) {
		t.Errorf("bob's list = %v, want empty", body)
	}
}

func TestBudgetEndpoints(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "ada@example.com")

	code, body := ts.do(t, http.MethodPost, "/api/budgets", token, map[string]any{
		"category": "Food", "limit": 100, "period": "monthly",
	})
	if code != http.StatusCreated {
		t.Fatalf("create budget = %d (%v)", code, body)
	}
	budget := field(t, body, "budget")
	if budget["isActive"] != true || budget["alertThreshold"] != float64(80) {
		t.Errorf("budget defaults = %v, want active with threshold 80", budget)
	}
	id := budget["id"].(string)

	code, body = ts.do(t, http.MethodPost, "/api/budgets", token, map[string]any{
		"category": "Food", "limit": 50, "period": "monthly",
	})
	if code != http.StatusBadRequest || body["message"] != "Budget already exists for this category and period" {
		t.Errorf("duplicate budget = %d %v", code, body)
	}

	ts.do(t, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount": 85, "description": "Groceries", "category": "Food", "date": "2025-03-10",
	})
	ts.do(t, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount": 40, "description": "Last month", "category": "Food", "date": "2025-02-27",
	})

	code, body = ts.do(t, http.MethodGet, "/api/budgets", token, nil)
	if code != http.StatusOK {
		t.Fatalf("list budgets = %d", code)
	}
	list := body["budgets"].([]any)
	if len(list) != 1 {
		t.Fatalf("budgets = %v, want 1", list)
	}
	view := list[0].(map[string]any)
	if view["currentSpending"] != float64(85) || view["percentage"] != float64(85) || view["status"] != "near-limit" {
		t.Errorf("budget view = %v, want 85 spent, near-limit", view)
	}

	code, body = ts.do(t, http.MethodPut, "/api/budgets/"+id, token, map[string]any{"isActive": false})
	if code != http.StatusOK {
		t.Fatalf("update budget = %d (%v)", code, body)
	}
	budget = field(t, body, "budget")
	if budget["isActive"] != false || budget["limit"] != float64(100) {
		t.Errorf("partial budget update = %v", budget)
	}

	code, _ = ts.do(t, http.MethodPost, "/api/budgets", token, map[string]any{"category": "Rent", "limit": 10, "period": "yearly"})
	if code != http.StatusBadRequest {
		t.Errorf("invalid period status = %d, want 400", code)
	}
}

func TestBudgetZeroLimitPercentageIsNull(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "ada@example.com")

	ts.do(t, http.MethodPost, "/api/budgets", token, map[string]any{"category": "Fun", "limit": 0, "period": "daily"})
	ts.do(t, http.MethodPost, "/api/transactions", token, map[string]any{"amount": 3, "description": "Game", "category": "Fun"})

	_, body := ts.do(t, http.MethodGet, "/api/budgets", token, nil)
	view := body["budgets"].([]any)[0].(map[string]any)
	if pct, ok := view["percentage"]; !ok || pct != nil {
		t.Errorf("percentage = %v, want null", view["percentage"])
	}
	if view["status"] != "over" {
		t.Errorf("status = %v, want over", view["status"])
	}
}

func TestExplicitZeroIsNotDefaulted(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "ada@example.com")

	tests := []struct {
		name string
		path string
		body map[string]any
	}{
		{"budget threshold 0", "/api/budgets", map[string]any{
			"category": "Food", "limit": 100, "period": "monthly", "alertThreshold": 0,
		}},
		{"budget threshold 101", "/api/budgets", map[string]any{
			"category": "Food", "limit": 100, "period": "monthly", "alertThreshold": 101,
		}},
		{"bill reminder 0", "/api/bills", map[string]any{
			"name": "Rent", "amount": 900, "dueDate": "2025-03-20", "category": "Housing", "reminderDays": 0,
		}},
		{"bill reminder 31", "/api/bills", map[string]any{
			"name": "Rent", "amount": 900, "dueDate": "2025-03-20", "category": "Housing", "reminderDays": 31,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := ts.do(t, http.MethodPost, tt.path, token, tt.body)
			if code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (%v)", code, body)
			}
		})
	}

	code, body := ts.do(t, http.MethodPost, "/api/bills", token, map[string]any{
		"name": "Rent", "amount": 900, "dueDate": "2025-03-20", "category": "Housing",
	})
	if code != http.StatusCreated {
		t.Fatalf("create bill = %d (%v)", code, body)
	}
	bill := field(t, body, "bill")
	if bill["reminderDays"] != float64(3) {
		t.Errorf("omitted reminderDays = %v, want 3", bill["reminderDays"])
	}

	code, body = ts.do(t, http.MethodPut, "/api/bills/"+bill["id"].(string), token, map[string]any{"reminderDays": 0})
	if code != http.StatusBadRequest {
		t.Errorf("update reminderDays 0 = %d, want 400 (%v)", code, body)
	}
	if _, body := ts.do(t, http.MethodGet, "/api/budgets", token, nil); len(body["budgets"].([]any)) != 0 {
		t.Errorf("budgets = %v, want none saved", body["budgets"])
	}
}

func TestBillEndpoints(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "ada@example.com")

	create := func(name, due string) string {
		code, body := ts.do(t, http.MethodPost, "/api/bills", token, map[string]any{
			"name": name, "amount": 50, "dueDate": due, "category": "Utilities",
		})
		if code != http.StatusCreated {
			t.Fatalf("create bill %s = %d (%v)", name, code, body)
		}
		return field(t, body, "bill")["id"].(string)
	}
	electric := create("Electric", "2025-03-14")
	create("Internet", "2025-03-17")
	create("Insurance", "2025-06-01")

	code, body := ts.do(t, http.MethodGet, "/api/bills/"+electric, token, nil)
	bill := field(t, body, "bill")
	if code != http.StatusOK || bill["status"] != "overdue" || bill["statusText"] != "Overdue by 1 day" {
		t.Errorf("electric = %d %v, want overdue by 1 day", code, bill)
	}
	if bill["recurring"] != "none" || bill["reminderDays"] != float64(3) {
		t.Errorf("bill defaults = %v", bill)
	}

	_, body = ts.do(t, http.MethodGet, "/api/bills?upcoming=true", token, nil)
	if got := len(body["bills"].([]any)); got != 2 {
		t.Errorf("upcoming bills = %d, want 2", got)
	}

	code, body = ts.do(t, http.MethodPut, "/api/bills/"+electric+"/pay", token, nil)
	bill = field(t, body, "bill")
	if code != http.StatusOK || bill["isPaid"] != true || bill["paidDate"] == nil || bill["status"] != "paid" {
		t.Errorf("pay = %d %v", code, bill)
	}
	paidDate := bill["paidDate"]

	_, body = ts.do(t, http.MethodPut, "/api/bills/"+electric+"/pay", token, nil)
	if got := field(t, body, "bill")["paidDate"]; got != paidDate {
		t.Errorf("second pay changed paidDate: %v -> %v", paidDate, got)
	}

	code, body = ts.do(t, http.MethodPut, "/api/bills/"+electric, token, map[string]any{"isPaid": false})
	if code != http.StatusConflict {
		t.Errorf("reopen paid bill = %d %v, want 409", code, body)
	}

	_, body = ts.do(t, http.MethodGet, "/api/bills", token, nil)
	bills := body["bills"].([]any)
	var order []string
	for _, b := range bills {
		order = append(order, b.(map[string]any)["name"].(string))
	}
	if got := strings.Join(order, ","); got != "Internet,Insurance,Electric" {
		t.Errorf("bill order = %s, want due-soon, upcoming, paid", got)
	}

	_, body = ts.do(t, http.MethodGet, "/api/bills?status=paid", token, nil)
	if got := len(body["bills"].([]any)); got != 1 {
		t.Errorf("paid bills = %d, want 1", got)
	}
	if code, _ := ts.do(t, http.MethodGet, "/api/bills?status=late", token, nil); code != http.StatusBadRequest {
		t.Errorf("bad status filter = %d, want 400", code)
	}
	if code, _ := ts.do(t, http.MethodPut, "/api/bills/missing/pay", token, nil); code != http.StatusNotFound {
		t.Errorf("pay missing bill = %d, want 404", code)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "ada@example.com")

	_, body := ts.do(t, http.MethodGet, "/api/categories", token, nil)
	if got := len(body["categories"].([]any)); got != len(core.DefaultCategories()) {
		t.Fatalf("seeded categories = %d, want %d", got, len(core.DefaultCategories()))
	}

	code, body := ts.do(t, http.MethodPost, "/api/categories", token, map[string]any{
		"name": "Pets", "color": "#abc", "icon": "🐶",
	})
	if code != http.StatusCreated {
		t.Fatalf("create category = %d (%v)", code, body)
	}
	id := field(t, body, "category")["id"].(string)

	code, body = ts.do(t, http.MethodPost, "/api/categories", token, map[string]any{
		"name": "Pets", "color": "#abcdef", "icon": "🐱",
	})
	if code != http.StatusBadRequest || body["message"] != "Category with this name already exists" {
		t.Errorf("duplicate category = %d %v", code, body)
	}

	code, body = ts.do(t, http.MethodPut, "/api/categories/"+id, token, map[string]any{"color": "red"})
	if code != http.StatusBadRequest {
		t.Errorf("invalid color update = %d %v, want 400", code, body)
	}
	if code, _ := ts.do(t, http.MethodDelete, "/api/categories/"+id, token, nil); code != http.StatusOK {
		t.Errorf("delete category = %d", code)
	}
}

func TestNotificationEndpoints(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "ada@example.com")
	userID := ts.userID(t, token)

	for i, n := range []core.Notification{
		{Type: core.NotifyBudgetAlert, Title: "Food budget exceeded", Message: "m", Priority: core.PriorityHigh, DedupeKey: "a"},
		{Type: core.NotifyBillReminder, Title: "Rent is due today", Message: "m", Priority: core.PriorityHigh, DedupeKey: "b"},
	} {
		n.UserID = userID
		n.CreatedAt = testNow.Add(time.Duration(i) * time.Minute)
		if _, err := ts.store.CreateNotification(context.Background(), n); err != nil {
			t.Fatalf("CreateNotification() error = %v", err)
		}
	}

	_, body := ts.do(t, http.MethodGet, "/api/notifications", token, nil)
	list := body["notifications"].([]any)
	if len(list) != 2 || body["unreadCount"] != float64(2) {
		t.Fatalf("notifications = %v", body)
	}
	if list[0].(map[string]any)["title"] != "Rent is due today" {
		t.Errorf("first notification = %v, want newest first", list[0])
	}

	_, body = ts.do(t, http.MethodGet, "/api/notifications?filter=bills", token, nil)
	if got := len(body["notifications"].([]any)); got != 1 {
		t.Errorf("bills filter = %d, want 1", got)
	}
	if code, _ := ts.do(t, http.MethodGet, "/api/notifications?filter=spam", token, nil); code != http.StatusBadRequest {
		t.Errorf("bad filter = %d, want 400", code)
	}

	id := list[0].(map[string]any)["id"].(string)
	if code, _ := ts.do(t, http.MethodPut, "/api/notifications/"+id+"/read", token, nil); code != http.StatusOK {
		t.Errorf("mark read = %d", code)
	}
	_, body = ts.do(t, http.MethodGet, "/api/notifications?filter=unread", token, nil)
	if body["unreadCount"] != float64(1) {
		t.Errorf("unreadCount = %v, want 1", body["unreadCount"])
	}

	_, body = ts.do(t, http.MethodPut, "/api/notifications/read-all", token, nil)
	if body["updated"] != float64(1) {
		t.Errorf("read-all updated = %v, want 1", body["updated"])
	}

	if code, _ := ts.do(t, http.MethodDelete, "/api/notifications/"+id, token, nil); code != http.StatusOK {
		t.Errorf("delete = %d", code)
	}
	if code, _ := ts.do(t, http.MethodDelete, "/api/notifications/"+id, token, nil); code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", code)
	}
}

func TestDashboardSummary(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "ada@example.com")

	ts.do(t, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount": 1000, "description": "Salary", "category": "Salary", "type": "income", "date": "2025-03-01",
	})
	ts.do(t, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount": 250.75, "description": "Rent share", "category": "Housing", "date": "2025-03-02",
	})

	code, body := ts.do(t, http.MethodGet, "/api/dashboard/summary", token, nil)
	if code != http.StatusOK {
		t.Fatalf("summary = %d (%v)", code, body)
	}
	summary := field(t, body, "summary")
	if summary["totalIncome"] != float64(1000) || summary["totalExpenses"] != 250.75 || summary["balance"] != 749.25 {
		t.Errorf("summary totals = %v", summary)
	}
}

func TestRateLimitOnWrites(t *testing.T) {
	ts := newTestServer(t, 2)

	body := map[string]string{"email": "x@example.com", "password": "password123"}
	ts.do(t, http.MethodPost, "/api/auth/login", "", body)
	ts.do(t, http.MethodPost, "/api/auth/login", "", body)
	code, resp := ts.do(t, http.MethodPost, "/api/auth/login", "", body)
	if code != http.StatusTooManyRequests {
		t.Errorf("third write = %d %v, want 429", code, resp)
	}

	if code, _ := ts.do(t, http.MethodGet, "/healthz", "", nil); code != http.StatusOK {
		t.Errorf("read after limit = %d, want 200", code)
	}
}

package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestParseTransactionFilter(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skip("tzdata not available")
	}

	tests := []struct {
		name     string
		query    string
		wantErr  bool
		wantKind core.TransactionKind
		wantFrom time.Time
		wantTo   time.Time
		wantLim  int
	}{
		{name: "empty query"},
		{name: "kind and limit", query: "type=income&limit=5", wantKind: core.KindIncome, wantLim: 5},
		{
			name:     "date range covers whole last day",
			query:    "from=2025-03-01&to=2025-03-31",
			wantFrom: time.Date(2025, 3, 1, 0, 0, 0, 0, rome),
			wantTo:   time.Date(2025, 4, 1, 0, 0, 0, 0, rome).Add(-time.Nanosecond),
		},
		{name: "bad type", query: "type=gift", wantErr: true},
		{name: "bad from", query: "from=March", wantErr: true},
		{name: "to before from", query: "from=2025-03-10&to=2025-03-01", wantErr: true},
		{name: "negative limit", query: "limit=-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			f, err := parseTransactionFilter(q, rome)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTransactionFilter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ve *core.ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("error %v is not a ValidationError", err)
				}
				return
			}
			if f.Kind != tt.wantKind || f.Limit != tt.wantLim {
				t.Errorf("filter = %+v", f)
			}
			if !f.From.Equal(tt.wantFrom) || !f.To.Equal(tt.wantTo) {
				t.Errorf("range = %v..%v, want %v..%v", f.From, f.To, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestParseBillQuery(t *testing.T) {
	tests := []struct {
		query    string
		status   string
		upcoming bool
		wantErr  bool
	}{
		{"", "", false, false},
		{"status=paid", "paid", false, false},
		{"status=unpaid&upcoming=true", "unpaid", true, false},
		{"upcoming=1", "", true, false},
		{"status=overdue", "", false, true},
		{"upcoming=soon", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			got, err := parseBillQuery(q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBillQuery(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			}
			if !tt.wantErr && (got.Status != tt.status || got.Upcoming != tt.upcoming) {
				t.Errorf("parseBillQuery(%q) = %+v", tt.query, got)
			}
		})
	}
}

func TestParseNotificationFilter(t *testing.T) {
	for query, want := range map[string]string{"": "all", "filter=unread": "unread", "filter=budget": "budget"} {
		q, _ := url.ParseQuery(query)
		got, err := parseNotificationFilter(q)
		if err != nil || got != want {
			t.Errorf("parseNotificationFilter(%q) = %q, %v; want %q", query, got, err, want)
		}
	}
	q, _ := url.ParseQuery("filter=everything")
	if _, err := parseNotificationFilter(q); err == nil {
		t.Error("parseNotificationFilter(everything) error = nil")
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"valid", `{"amount": 12.5, "description": "x"}`, nil},
		{"empty body", ``, errMalformedBody},
		{"syntax error", `{"amount":`, errMalformedBody},
		{"bad amount", `{"amount": "twelve"}`, core.ErrInvalidAmount},
		{"too large", `{"description":"` + strings.Repeat("a", maxBodyBytes) + `"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var req transactionRequest
			err := decodeJSON(r, &req)

			switch {
			case tt.name == "too large":
				var ve *core.ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("decodeJSON() error = %v, want ValidationError", err)
				}
			case tt.wantErr == nil:
				if err != nil {
					t.Fatalf("decodeJSON() error = %v", err)
				}
				if req.Amount == nil || req.Amount.String() != "12.50" {
					t.Errorf("amount = %v, want 12.50", req.Amount)
				}
			case !errors.Is(err, tt.wantErr):
				t.Errorf("decodeJSON() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Groceries  ", "Groceries"},
		{"a\x00b\x07c", "abc"},
		{"line1\nline2\ttab", "line1\nline2\ttab"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := parseTimestamp("2025-03-14", time.UTC)
	if err != nil || !got.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parseTimestamp(date) = %v, %v", got, err)
	}
	got, err = parseTimestamp("2025-03-14T18:30:00+01:00", time.UTC)
	if err != nil || got.Hour() != 18 {
		t.Errorf("parseTimestamp(rfc3339) = %v, %v", got, err)
	}
	if _, err := parseTimestamp("yesterday", time.UTC); err == nil {
		t.Error("parseTimestamp(yesterday) error = nil")
	}
}

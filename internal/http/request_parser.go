// This file holds request decoding: JSON bodies, query filters and
// input sanitization shared by the resource handlers.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("invalid request body")

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return errMalformedBody
	}
	if len(body) > maxBodyBytes {
		return &core.ValidationError{Field: "body", Err: errors.New("request body too large")}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return errMalformedBody
	}
	if err := json.Unmarshal(body, dst); err != nil {
		// Typed decode failures (bad amount, bad date) surface as validation errors.
		var ve *core.ValidationError
		if errors.As(err, &ve) {
			return ve
		}
		if errors.Is(err, core.ErrInvalidAmount) {
			return &core.ValidationError{Field: "amount", Err: core.ErrInvalidAmount}
		}
		return errMalformedBody
	}
	return nil
}

// sanitizeInput trims s and drops control characters except tab, newline, carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// sanitized returns a cleaned copy of *p, or nil.
func sanitized(p *string) *string {
	if p == nil {
		return nil
	}
	s := sanitizeInput(*p)
	return &s
}

// parseTimestamp accepts YYYY-MM-DD (local midnight in loc) or RFC 3339.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return d.At(loc), nil
}

// parseTransactionFilter reads type, category, from, to and limit.
// The to bound covers the whole named day.
func parseTransactionFilter(q url.Values, loc *time.Location) (store.TransactionFilter, error) {
	var f store.TransactionFilter

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		f.Kind = core.TransactionKind(v)
		if !f.Kind.Valid() {
			return f, &core.ValidationError{Field: "type", Err: core.ErrInvalidKind}
		}
	}
	f.Category = sanitizeInput(q.Get("category"))

	if v := q.Get("from"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, &core.ValidationError{Field: "from", Err: err}
		}
		f.From = d.At(loc)
	}
	if v := q.Get("to"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, &core.ValidationError{Field: "to", Err: err}
		}
		f.To = d.AddDays(1).At(loc).Add(-time.Nanosecond)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, &core.ValidationError{Field: "to", Err: errors.New("to must not be before from")}
	}

	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return f, &core.ValidationError{Field: "limit", Err: fmt.Errorf("invalid limit %q", v)}
		}
		f.Limit = n
	}
	return f, nil
}

// parseBillQuery reads status=paid|unpaid and upcoming=true.
func parseBillQuery(q url.Values) (services.BillQuery, error) {
	var bq services.BillQuery
	switch status := strings.TrimSpace(q.Get("status")); status {
	case "", "paid", "unpaid":
		bq.Status = status
	default:
		return bq, &core.ValidationError{Field: "status", Err: fmt.Errorf("invalid status %q", status)}
	}
	if v := strings.TrimSpace(q.Get("upcoming")); v != "" {
		upcoming, err := strconv.ParseBool(v)
		if err != nil {
			return bq, &core.ValidationError{Field: "upcoming", Err: fmt.Errorf("invalid upcoming %q", v)}
		}
		bq.Upcoming = upcoming
	}
	return bq, nil
}

// parseNotificationFilter defaults to all.
func parseNotificationFilter(q url.Values) (string, error) {
	filter := strings.TrimSpace(q.Get("filter"))
	if filter == "" {
		return services.FilterAll, nil
	}
	if !services.ValidFilter(filter) {
		return "", &core.ValidationError{Field: "filter", Err: fmt.Errorf("invalid filter %q", filter)}
	}
	return filter, nil
}

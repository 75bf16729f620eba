package core

import "time"

// Clock supplies the reference instant for windows and bill day counts.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
// A nil Location means time.Local.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Midnight truncates t to 00:00 of its calendar day in t's own location.
// time.Date is used instead of Truncate so DST days keep their local midnight.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns the clock's current civil date.
func Today(c Clock) Date {
	return DateOf(c.Now())
}

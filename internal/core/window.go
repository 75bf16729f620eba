package core

import (
	"fmt"
	"time"
)

// WindowStrategy computes where a budget period's spending window begins.
// All strategies work in now's location, so the caller's clock fixes the
// timezone policy for every window.
type WindowStrategy interface {
	Start(now time.Time) time.Time
}

// DailyWindow starts at local midnight of today.
type DailyWindow struct{}

func (DailyWindow) Start(now time.Time) time.Time {
	return Midnight(now)
}

// WeeklyWindow starts at local midnight of the most recent Sunday.
type WeeklyWindow struct{}

func (WeeklyWindow) Start(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
}

// MonthlyWindow starts at local midnight of the 1st.
type MonthlyWindow struct{}

func (MonthlyWindow) Start(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
}

var windowStrategies = map[Period]WindowStrategy{
	Daily:   DailyWindow{},
	Weekly:  WeeklyWindow{},
	Monthly: MonthlyWindow{},
}

// GetWindowStrategy returns the strategy registered for a period.
func GetWindowStrategy(p Period) (WindowStrategy, error) {
	s, ok := windowStrategies[p]
	if !ok {
		return nil, fmt.Errorf("unknown period: %s", p)
	}
	return s, nil
}

// RegisterWindowStrategy adds or replaces the strategy for a period.
func RegisterWindowStrategy(p Period, s WindowStrategy) {
	windowStrategies[p] = s
}

// Window is the closed interval [Start, End] a budget aggregates over.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the window, both ends inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WindowFor returns [start, now] for the period. It never fails: budgets are
// validated before they get here, and an unregistered period degrades to the
// empty window [now, now].
func WindowFor(p Period, now time.Time) Window {
	s, err := GetWindowStrategy(p)
	if err != nil {
		return Window{Start: now, End: now}
	}
	return Window{Start: s.Start(now), End: now}
}

// WindowStart is shorthand for WindowFor(p, now).Start.
func WindowStart(p Period, now time.Time) time.Time {
	return WindowFor(p, now).Start
}

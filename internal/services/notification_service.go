package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// Notification list filters accepted by the API.
const (
	FilterAll    = "all"
	FilterUnread = "unread"
	FilterBudget = "budget"
	FilterBills  = "bills"
)

// NotificationList is a page of notifications plus the user's unread total.
type NotificationList struct {
	Notifications []core.Notification `json:"notifications"`
	UnreadCount   int                 `json:"unreadCount"`
}

type NotificationService struct {
	store store.NotificationStore
}

func NewNotificationService(s store.NotificationStore) *NotificationService {
	return &NotificationService{store: s}
}

// ValidFilter reports whether name is one of the list filters; "" means all.
func ValidFilter(name string) bool {
	switch name {
	case "", FilterAll, FilterUnread, FilterBudget, FilterBills:
		return true
	}
	return false
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID, filter string) (NotificationList, error) {
	var f store.NotificationFilter
	switch filter {
	case FilterUnread:
		f.UnreadOnly = true
	case FilterBudget:
		f.Types = []core.NotificationType{core.NotifyBudgetAlert, core.NotifySpendingWarning}
	case FilterBills:
		f.Types = []core.NotificationType{core.NotifyBillReminder}
	}

	items, err := s.store.ListNotifications(ctx, userID, f)
	if err != nil {
		return NotificationList{}, fmt.Errorf("list notifications: %w", err)
	}
	unread, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return NotificationList{}, fmt.Errorf("count unread notifications: %w", err)
	}
	if items == nil {
		items = []core.Notification{}
	}
	return NotificationList{Notifications: items, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.store.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	n, err := s.store.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return n, nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, userID, id string) error {
	return s.store.DeleteNotification(ctx, userID, id)
}

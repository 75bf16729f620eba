package storage

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

const notificationColumns = `id, user_id, type, title, message, priority, is_read, related_id, dedupe_key, created_at`

func scanNotification(s scanner) (core.Notification, error) {
	var (
		n             core.Notification
		typ, priority string
		read          int
		createdAt     int64
	)
	if err := s.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &priority, &read, &n.RelatedID, &n.DedupeKey, &createdAt); err != nil {
		return core.Notification{}, err
	}
	n.Type = core.NotificationType(typ)
	n.Priority = core.Priority(priority)
	n.Read = read == 1
	n.CreatedAt = fromUnix(createdAt)
	return n, nil
}

// CreateNotification relies on the partial unique index over (user_id, dedupe_key).
func (r *SQLiteRepository) CreateNotification(ctx context.Context, n core.Notification) (bool, error) {
	n.ID = newID(n.ID)
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO notifications (`+notificationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, string(n.Type), n.Title, n.Message, string(n.Priority), boolInt(n.Read),
		n.RelatedID, n.DedupeKey, toUnix(n.CreatedAt))
	if err != nil {
		return false, fmt.Errorf("insert notification: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert notification: %w", err)
	}
	return affected == 1, nil
}

func (r *SQLiteRepository) ListNotifications(ctx context.Context, userID string, f store.NotificationFilter) ([]core.Notification, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []any{userID}
	)
	if f.UnreadOnly {
		where = append(where, "is_read = 0")
	}
	if len(f.Types) > 0 {
		marks := make([]string, len(f.Types))
		for i, t := range f.Types {
			marks[i] = "?"
			args = append(args, string(t))
		}
		where = append(where, "type IN ("+strings.Join(marks, ", ")+")")
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE `+strings.Join(where, " AND ")+
			` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []core.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *SQLiteRepository) MarkRead(ctx context.Context, userID, id string) error {
	// is_read is not part of the predicate so re-marking a read notification still finds the row.
	err := expectOne(r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteRepository) DeleteNotification(ctx context.Context, userID, id string) error {
	if err := expectOne(r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ? AND user_id = ?`, id, userID)); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

const billColumns = `id, user_id, name, amount, due_date, category, recurring, reminder_days, is_paid, paid_at,
	notes, payment_method, vendor_name, vendor_website, vendor_phone, created_at, updated_at`

func scanBill(s scanner) (core.Bill, error) {
	var (
		b                      core.Bill
		amount, due, recurring string
		paid                   int
		paidAt                 sql.NullInt64
		createdAt, updatedAt   int64
	)
	err := s.Scan(&b.ID, &b.UserID, &b.Name, &amount, &due, &b.Category, &recurring, &b.ReminderDays, &paid, &paidAt,
		&b.Notes, &b.PaymentMethod, &b.Vendor.Name, &b.Vendor.Website, &b.Vendor.Phone, &createdAt, &updatedAt)
	if err != nil {
		return core.Bill{}, err
	}
	if b.Amount, err = parseMoney(amount); err != nil {
		return core.Bill{}, err
	}
	if b.DueDate, err = core.ParseDate(due); err != nil {
		return core.Bill{}, fmt.Errorf("stored due date %q: %w", due, err)
	}
	b.Recurring = core.Recurrence(recurring)
	b.IsPaid = paid == 1
	if paidAt.Valid {
		t := fromUnix(paidAt.Int64)
		b.PaidDate = &t
	}
	b.CreatedAt = fromUnix(createdAt)
	b.UpdatedAt = fromUnix(updatedAt)
	return b, nil
}

func nullableUnix(b core.Bill) sql.NullInt64 {
	if b.PaidDate == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toUnix(*b.PaidDate), Valid: true}
}

func (r *SQLiteRepository) CreateBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	b.ID = newID(b.ID)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bills (`+billColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.Name, b.Amount.String(), b.DueDate.String(), b.Category, string(b.Recurring),
		b.ReminderDays, boolInt(b.IsPaid), nullableUnix(b), b.Notes, b.PaymentMethod,
		b.Vendor.Name, b.Vendor.Website, b.Vendor.Phone, toUnix(b.CreatedAt), toUnix(b.UpdatedAt))
	if err != nil {
		return core.Bill{}, fmt.Errorf("insert bill: %w", mapWriteErr(err))
	}
	return r.GetBill(ctx, b.UserID, b.ID)
}

func (r *SQLiteRepository) GetBill(ctx context.Context, userID, id string) (core.Bill, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE id = ? AND user_id = ?`, id, userID)
	b, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Bill{}, store.ErrNotFound
	}
	if err != nil {
		return core.Bill{}, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepository) UpdateBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	err := expectOne(r.db.ExecContext(ctx,
		`UPDATE bills SET name = ?, amount = ?, due_date = ?, category = ?, recurring = ?, reminder_days = ?,
		 is_paid = ?, paid_at = ?, notes = ?, payment_method = ?, vendor_name = ?, vendor_website = ?,
		 vendor_phone = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		b.Name, b.Amount.String(), b.DueDate.String(), b.Category, string(b.Recurring), b.ReminderDays,
		boolInt(b.IsPaid), nullableUnix(b), b.Notes, b.PaymentMethod, b.Vendor.Name, b.Vendor.Website,
		b.Vendor.Phone, toUnix(b.UpdatedAt), b.ID, b.UserID))
	if err != nil {
		return core.Bill{}, fmt.Errorf("update bill: %w", err)
	}
	return r.GetBill(ctx, b.UserID, b.ID)
}

func (r *SQLiteRepository) DeleteBill(ctx context.Context, userID, id string) error {
	if err := expectOne(r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = ? AND user_id = ?`, id, userID)); err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListBills(ctx context.Context, userID string, f store.BillFilter) ([]core.Bill, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []any{userID}
	)
	if f.Paid != nil {
		where = append(where, "is_paid = ?")
		args = append(args, boolInt(*f.Paid))
	}
	if !f.DueBefore.IsZero() {
		// ISO dates compare lexically
		where = append(where, "due_date <= ?")
		args = append(args, f.DueBefore.String())
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE `+strings.Join(where, " AND ")+` ORDER BY due_date, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var out []core.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

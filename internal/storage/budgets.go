package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

const budgetColumns = `id, user_id, category, limit_amount, period, alert_threshold, is_active, created_at, updated_at`

func scanBudget(s scanner) (core.Budget, error) {
	var (
		b                    core.Budget
		limit, period        string
		active               int
		createdAt, updatedAt int64
	)
	if err := s.Scan(&b.ID, &b.UserID, &b.Category, &limit, &period, &b.AlertThreshold, &active, &createdAt, &updatedAt); err != nil {
		return core.Budget{}, err
	}
	m, err := parseMoney(limit)
	if err != nil {
		return core.Budget{}, err
	}
	b.Limit = m
	b.Period = core.Period(period)
	b.IsActive = active == 1
	b.CreatedAt = fromUnix(createdAt)
	b.UpdatedAt = fromUnix(updatedAt)
	return b, nil
}

func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	b.ID = newID(b.ID)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (`+budgetColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.Category, b.Limit.String(), string(b.Period), b.AlertThreshold,
		boolInt(b.IsActive), toUnix(b.CreatedAt), toUnix(b.UpdatedAt))
	if err != nil {
		return core.Budget{}, fmt.Errorf("insert budget: %w", mapWriteErr(err))
	}
	return r.GetBudget(ctx, b.UserID, b.ID)
}

func (r *SQLiteRepository) GetBudget(ctx context.Context, userID, id string) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, store.ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	err := expectOne(r.db.ExecContext(ctx,
		`UPDATE budgets SET category = ?, limit_amount = ?, period = ?, alert_threshold = ?, is_active = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		b.Category, b.Limit.String(), string(b.Period), b.AlertThreshold, boolInt(b.IsActive), toUnix(b.UpdatedAt),
		b.ID, b.UserID))
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	return r.GetBudget(ctx, b.UserID, b.ID)
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, userID, id string) error {
	if err := expectOne(r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListBudgets(ctx context.Context, userID string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? ORDER BY category, period`, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

const categoryColumns = `id, user_id, name, color, icon, type, is_default, created_at`

func scanCategory(s scanner) (core.Category, error) {
	var (
		c         core.Category
		typ       string
		isDefault int
		createdAt int64
	)
	if err := s.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &typ, &isDefault, &createdAt); err != nil {
		return core.Category{}, err
	}
	c.Type = core.CategoryType(typ)
	c.IsDefault = isDefault == 1
	c.CreatedAt = fromUnix(createdAt)
	return c, nil
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	c.ID = newID(c.ID)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Color, c.Icon, string(c.Type), boolInt(c.IsDefault), toUnix(c.CreatedAt))
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", mapWriteErr(err))
	}
	return c, nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, userID, id string) (core.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, store.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	err := expectOne(r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, color = ?, icon = ?, type = ? WHERE id = ? AND user_id = ?`,
		c.Name, c.Color, c.Icon, string(c.Type), c.ID, c.UserID))
	if err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	return r.GetCategory(ctx, c.UserID, c.ID)
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, userID, id string) error {
	if err := expectOne(r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

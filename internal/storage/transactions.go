package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

const transactionColumns = `id, user_id, amount, description, category, kind, occurred_at, tags, created_at`

func scanTransaction(s scanner) (core.Transaction, error) {
	var (
		tx                  core.Transaction
		amount, kind, tags  string
		occurred, createdAt int64
	)
	if err := s.Scan(&tx.ID, &tx.UserID, &amount, &tx.Description, &tx.Category, &kind, &occurred, &tags, &createdAt); err != nil {
		return core.Transaction{}, err
	}
	m, err := parseMoney(amount)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.Amount = m
	tx.Kind = core.TransactionKind(kind)
	tx.Date = fromUnix(occurred)
	tx.CreatedAt = fromUnix(createdAt)
	if err := json.Unmarshal([]byte(tags), &tx.Tags); err != nil {
		return core.Transaction{}, fmt.Errorf("decode tags: %w", err)
	}
	return tx, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx.ID = newID(tx.ID)
	tags, err := encodeTags(tx.Tags)
	if err != nil {
		return core.Transaction{}, err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.Amount.String(), tx.Description, tx.Category, string(tx.Kind),
		toUnix(tx.Date), tags, toUnix(tx.CreatedAt))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", mapWriteErr(err))
	}
	return r.GetTransaction(ctx, tx.UserID, tx.ID)
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tags, err := encodeTags(tx.Tags)
	if err != nil {
		return core.Transaction{}, err
	}
	err = expectOne(r.db.ExecContext(ctx,
		`UPDATE transactions SET amount = ?, description = ?, category = ?, kind = ?, occurred_at = ?, tags = ?
		 WHERE id = ? AND user_id = ?`,
		tx.Amount.String(), tx.Description, tx.Category, string(tx.Kind), toUnix(tx.Date), tags, tx.ID, tx.UserID))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return r.GetTransaction(ctx, tx.UserID, tx.ID)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	err := expectOne(r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string, f store.TransactionFilter) ([]core.Transaction, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []any{userID}
	)
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if !f.From.IsZero() {
		where = append(where, "occurred_at >= ?")
		args = append(args, toUnix(f.From))
	}
	if !f.To.IsZero() {
		where = append(where, "occurred_at <= ?")
		args = append(args, toUnix(f.To))
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY occurred_at DESC, id ASC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// Package google exports transactions to a Google Sheets ledger.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/core"
	ports "fintrack/internal/sheets"
)

// Config selects the target sheet and the service account credentials.
// CredentialsJSON wins over CredentialsFile when both are set.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
	// Location renders transaction dates; nil means UTC.
	Location *time.Location
}

type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	loc           *time.Location
}

var _ ports.TransactionExporter = (*Exporter)(nil)

// New creates an exporter authenticated with a service account.
func New(ctx context.Context, cfg Config) (*Exporter, error) {
	creds, err := credentials(cfg)
	if err != nil {
		return nil, err
	}
	return newExporter(ctx, cfg,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
}

func newExporter(ctx context.Context, cfg Config, opts ...goption.ClientOption) (*Exporter, error) {
	id := strings.TrimSpace(cfg.SpreadsheetID)
	if id == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	name := strings.TrimSpace(cfg.SheetName)
	if name == "" {
		name = "Transactions"
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	slog.InfoContext(ctx, "Google Sheets exporter ready", "sheet", name)
	return &Exporter{svc: svc, spreadsheetID: id, sheetName: name, loc: loc}, nil
}

func credentials(cfg Config) ([]byte, error) {
	if js := strings.TrimSpace(cfg.CredentialsJSON); js != "" {
		return []byte(js), nil
	}
	if path := strings.TrimSpace(cfg.CredentialsFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
}

// Append adds one row after the last used row of the ledger sheet and
// returns the A1 range it landed in.
func (e *Exporter) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if tx.ID == "" {
		return "", errors.New("transaction has no id")
	}
	rng := fmt.Sprintf("%s!A:G", e.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{transactionRow(tx, e.loc)}}

	resp, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", e.sheetName, err)
	}
	if resp.Updates == nil {
		return rng, nil
	}
	return resp.Updates.UpdatedRange, nil
}

// transactionRow lays out Date, Type, Category, Description, Amount, Tags, ID.
// Expenses are written as negative amounts so the sheet can sum a balance.
func transactionRow(tx core.Transaction, loc *time.Location) []any {
	amount := tx.Amount.String()
	if tx.Kind == core.KindExpense {
		amount = "-" + amount
	}
	return []any{
		tx.Date.In(loc).Format(time.DateOnly),
		string(tx.Kind),
		tx.Category,
		tx.Description,
		amount,
		strings.Join(tx.Tags, ", "),
		tx.ID,
	}
}

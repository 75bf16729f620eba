// Package sheets declares the ledger export port used by the worker.
package sheets

import (
	"context"

	"fintrack/internal/core"
)

// TransactionExporter appends a transaction to an external ledger.
type TransactionExporter interface {
	Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}

// Package worker reacts to transaction events published by the API.
package worker

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/sheets"
	"fintrack/internal/store"
)

// BudgetChecker re-evaluates budgets on one category.
type BudgetChecker interface {
	CheckCategory(ctx context.Context, userID, category string) (int, error)
}

// TransactionReader loads the record an event refers to.
type TransactionReader interface {
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
}

// EventHandler handles transaction.created events: expenses trigger a budget
// re-check, and every transaction is appended to the sheet ledger when an
// exporter is configured.
type EventHandler struct {
	transactions TransactionReader
	budgets      BudgetChecker
	exporter     sheets.TransactionExporter
	logger       *log.Logger
}

// NewEventHandler builds a handler. exporter may be nil.
func NewEventHandler(transactions TransactionReader, budgets BudgetChecker, exporter sheets.TransactionExporter, logger *log.Logger) *EventHandler {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &EventHandler{
		transactions: transactions,
		budgets:      budgets,
		exporter:     exporter,
		logger:       logger.WithComponent(log.ComponentWorker),
	}
}

// Handle processes one event. A returned error requeues the delivery.
func (h *EventHandler) Handle(ctx context.Context, ev *amqp.TransactionEvent) error {
	if ev.Type != amqp.EventTransactionCreated {
		h.logger.WarnContext(ctx, "Ignoring unknown event type", "type", ev.Type)
		return nil
	}

	if ev.Kind == core.KindExpense {
		created, err := h.budgets.CheckCategory(ctx, ev.UserID, ev.Category)
		if err != nil {
			return fmt.Errorf("check budgets: %w", err)
		}
		if created > 0 {
			h.logger.InfoContext(ctx, "Spending warnings raised",
				log.FieldUserID, ev.UserID,
				log.FieldCategory, ev.Category,
				"count", created)
		}
	}

	if h.exporter == nil {
		return nil
	}
	return h.export(ctx, ev)
}

func (h *EventHandler) export(ctx context.Context, ev *amqp.TransactionEvent) error {
	tx, err := h.transactions.GetTransaction(ctx, ev.UserID, ev.TransactionID)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted before the event was consumed.
		h.logger.InfoContext(ctx, "Skipping export of missing transaction",
			log.FieldResourceID, ev.TransactionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}

	ref, err := h.exporter.Append(ctx, tx)
	if err != nil {
		return fmt.Errorf("export transaction: %w", err)
	}
	h.logger.InfoContext(ctx, "Exported transaction",
		log.FieldResourceID, tx.ID,
		"sheets_ref", ref)
	return nil
}

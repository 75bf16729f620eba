package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"fintrack/internal/core"
)

type EventType string

const EventTransactionCreated EventType = "transaction.created"

// TransactionEvent is a lightweight notification that a transaction was
// written. Consumers load the full record from the store by ID.
type TransactionEvent struct {
	Type          EventType            `json:"type"`
	TransactionID string               `json:"transactionId"`
	UserID        string               `json:"userId"`
	Category      string               `json:"category"`
	Kind          core.TransactionKind `json:"kind"`
	Timestamp     time.Time            `json:"timestamp"`
}

// NewTransactionCreatedEvent builds the event published after a create.
func NewTransactionCreatedEvent(tx core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Type:          EventTransactionCreated,
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		Category:      tx.Category,
		Kind:          tx.Kind,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionEventFromJSON decodes and checks an event body.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var msg TransactionEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type == "" || msg.TransactionID == "" || msg.UserID == "" {
		return nil, errors.New("event missing type, transaction id or user id")
	}
	return &msg, nil
}

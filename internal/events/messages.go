package events

import (
	"encoding/json"
	"time"
)

// Actions carried by TransactionSyncMessage.
const (
	ActionAdded   = "added"
	ActionDeleted = "deleted"
)

// TransactionSyncMessage tells the export worker which transaction
// changed. It carries only the id and action; the worker reads the
// current ledger from the shared kv store.
type TransactionSyncMessage struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionSyncMessage(id, action string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ReminderDueMessage announces a reminder entering its notification
// window. Delivery to the user's device is handled downstream.
type ReminderDueMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    int64     `json:"amount"`
	DueDate   string    `json:"dueDate"` // 2006-01-02
	Timestamp time.Time `json:"timestamp"`
}

func (m *ReminderDueMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReminderDueMessageFromJSON(data []byte) (*ReminderDueMessage, error) {
	var msg ReminderDueMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

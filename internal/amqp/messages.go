package amqp

import (
	"encoding/json"
	"time"
)

// LedgerEventMessage tells the export worker that the ledger changed.
// It carries only the identifiers; the worker reads the current snapshot
// from storage when it handles the event.
type LedgerEventMessage struct {
	Action     string    `json:"action"` // "created" or "deleted"
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates an event message stamped with the current time.
func NewLedgerEventMessage(action, collection, id string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Action:     action,
		Collection: collection,
		ID:         id,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventFromJSON creates a message from JSON bytes.
func LedgerEventFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"viagens/internal/core"
)

// LedgerChangedMessage carries the full ledger after a change so a consumer
// can rebuild its mirror without reading the primary store.
type LedgerChangedMessage struct {
	Event     string             `json:"event"`
	EntryID   string             `json:"entry_id"`
	Entries   []core.BudgetEntry `json:"entries"`
	Total     float64            `json:"total"`
	Timestamp time.Time          `json:"timestamp"`
}

var errMissingEvent = errors.New("message has no event")

func NewLedgerChangedMessage(event, entryID string, entries []core.BudgetEntry, total float64) *LedgerChangedMessage {
	if entries == nil {
		entries = []core.BudgetEntry{}
	}
	return &LedgerChangedMessage{
		Event:     event,
		EntryID:   entryID,
		Entries:   entries,
		Total:     total,
		Timestamp: time.Now().UTC(),
	}
}

func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Event == "" {
		return nil, errMissingEvent
	}
	return &msg, nil
}

package events

import (
	"encoding/json"
	"time"
)

// LedgerEvent is the lightweight change-feed message: just the transaction id
// and what happened to it. Consumers fetch the full record from the ledger if
// they need it.
type LedgerEvent struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(action, id string) *LedgerEvent {
	return &LedgerEvent{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

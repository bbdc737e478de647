package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventVersion = 1

// Envelope wraps every event written to the topic
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	RequestID    string          `json:"request_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload into a fresh envelope
func NewEnvelope(producer, eventType, requestID string, payload any, now time.Time) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: EventVersion,
		OccurredAt:   now.UTC(),
		Producer:     producer,
		RequestID:    requestID,
		Payload:      raw,
	}, nil
}

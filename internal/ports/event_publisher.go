package ports

import (
	"context"
	"time"
)

const (
	EventStopsChanged   = "stops.changed"
	EventTripCalculated = "trip.calculated"
	EventTripFailed     = "trip.failed"
)

type Event struct {
	Type      string    `json:"type"`
	SessionID string    `json:"session_id"`
	At        time.Time `json:"at"`
	Payload   any       `json:"payload,omitempty"`
}

// Best-effort notification sink for session state changes.
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}

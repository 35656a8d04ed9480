package events

import "time"

// Event defines the contract for everything published on the bus.
type Event interface {
	// EventType returns the event name, e.g. "profile_updated".
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// TelemetryEvent is a tracked user action with string properties.
type TelemetryEvent struct {
	Name       string            `json:"name"`
	Properties map[string]string `json:"properties"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func NewTelemetryEvent(name string, properties map[string]string) TelemetryEvent {
	props := make(map[string]string, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	return TelemetryEvent{Name: name, Properties: props, OccurredAt: time.Now()}
}

func (e TelemetryEvent) EventType() string {
	return e.Name
}

func (e TelemetryEvent) Payload() map[string]string {
	return e.Properties
}

func (e TelemetryEvent) Timestamp() time.Time {
	return e.OccurredAt
}

package service

import (
	"sync"

	"settings-core/internal/pkg/logger"
	"settings-core/pkg/events"
)

const telemetryModule = "TelemetrySink"

// DefaultRetainedEvents bounds how many recent events a LoggingTelemetrySink
// keeps in memory.
const DefaultRetainedEvents = 256

// LoggingTelemetrySink writes tracked events to the structured log and keeps
// the most recent ones in a ring. It is the default sink when no broker is
// configured.
type LoggingTelemetrySink struct {
	mu      sync.Mutex
	enabled bool
	events  []events.TelemetryEvent
	next    int
	full    bool
	logger  logger.ILogger
}

func NewLoggingTelemetrySink(log logger.ILogger, enabled bool) *LoggingTelemetrySink {
	return NewLoggingTelemetrySinkWithCapacity(log, enabled, DefaultRetainedEvents)
}

func NewLoggingTelemetrySinkWithCapacity(log logger.ILogger, enabled bool, capacity int) *LoggingTelemetrySink {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if capacity < 1 {
		capacity = DefaultRetainedEvents
	}
	return &LoggingTelemetrySink{
		enabled: enabled,
		events:  make([]events.TelemetryEvent, capacity),
		logger:  log,
	}
}

func (s *LoggingTelemetrySink) Track(eventName string, properties map[string]string) {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}
	s.events[s.next] = events.NewTelemetryEvent(eventName, properties)
	s.next = (s.next + 1) % len(s.events)
	if s.next == 0 {
		s.full = true
	}
	s.mu.Unlock()

	details := make(map[string]interface{}, len(properties)+1)
	for k, v := range properties {
		details[k] = v
	}
	s.logger.Info(telemetryModule, "Tracked "+eventName, details)
}

func (s *LoggingTelemetrySink) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
	s.logger.Info(telemetryModule, "Telemetry toggled", map[string]interface{}{"enabled": enabled})
}

func (s *LoggingTelemetrySink) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Events returns the retained events, oldest first.
func (s *LoggingTelemetrySink) Events() []events.TelemetryEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.full {
		out := make([]events.TelemetryEvent, s.next)
		copy(out, s.events[:s.next])
		return out
	}
	out := make([]events.TelemetryEvent, 0, len(s.events))
	out = append(out, s.events[s.next:]...)
	return append(out, s.events[:s.next]...)
}

// EventNames is a convenience for assertions.
func (s *LoggingTelemetrySink) EventNames() []string {
	evts := s.Events()
	names := make([]string, 0, len(evts))
	for _, e := range evts {
		names = append(names, e.Name)
	}
	return names
}

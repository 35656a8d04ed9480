package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"settings-core/internal/pkg/logger"
	"settings-core/pkg/events"
)

const natsTelemetryModule = "NatsTelemetrySink"

// EventPublisher is satisfied by *nats.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// NatsTelemetrySink forwards tracked events to the broker without blocking
// the caller. Publish failures are logged and dropped.
type NatsTelemetrySink struct {
	publisher EventPublisher
	enabled   atomic.Bool
	timeout   time.Duration
	inflight  sync.WaitGroup
	logger    logger.ILogger
}

func NewNatsTelemetrySink(publisher EventPublisher, log logger.ILogger, enabled bool) *NatsTelemetrySink {
	if log == nil {
		log = logger.NewNopLogger()
	}
	s := &NatsTelemetrySink{
		publisher: publisher,
		timeout:   5 * time.Second,
		logger:    log,
	}
	s.enabled.Store(enabled)
	return s
}

func (s *NatsTelemetrySink) Track(eventName string, properties map[string]string) {
	if !s.enabled.Load() || s.publisher == nil {
		return
	}

	evt := events.NewTelemetryEvent(eventName, properties)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn(natsTelemetryModule, "Failed to publish telemetry event", map[string]interface{}{
				"event": eventName,
				"error": err.Error(),
			})
		}
	}()
}

func (s *NatsTelemetrySink) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
	s.logger.Info(natsTelemetryModule, "Telemetry toggled", map[string]interface{}{"enabled": enabled})
}

// Flush waits for every dispatched publish to finish.
func (s *NatsTelemetrySink) Flush() {
	s.inflight.Wait()
}

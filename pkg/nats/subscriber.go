package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"settings-core/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler processes one decoded telemetry event.
type EventHandler func(ctx context.Context, event events.TelemetryEvent) error

type Subscriber struct {
	nc   *nats.Conn
	js   jetstream.JetStream
	cctx jetstream.ConsumeContext
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe consumes events matching subject. An empty durableName creates an
// ephemeral consumer that starts with new messages only.
func (s *Subscriber) Subscribe(ctx context.Context, subject, durableName string, handler EventHandler) error {
	cfg := jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	}
	if durableName == "" {
		cfg.DeliverPolicy = jetstream.DeliverNewPolicy
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, cfg)
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cctx, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := DecodeEvent(msg.Subject(), msg.Data())
		if err != nil {
			log.Printf("Error decoding event on %s: %v", msg.Subject(), err)
			// Undecodable payloads will never succeed; drop them.
			_ = msg.Term()
			return
		}

		if err := handler(ctx, event); err != nil {
			log.Printf("Handler failed for event %s: %v", msg.Subject(), err)
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	s.cctx = cctx
	return nil
}

// DecodeEvent rebuilds a TelemetryEvent from a subject and wire payload.
func DecodeEvent(subject string, data []byte) (events.TelemetryEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return events.TelemetryEvent{}, err
	}
	if w.Properties == nil {
		w.Properties = map[string]string{}
	}
	return events.TelemetryEvent{
		Name:       strings.TrimPrefix(subject, SubjectPrefix),
		Properties: w.Properties,
		OccurredAt: w.OccurredAt,
	}, nil
}

func (s *Subscriber) Close() {
	if s.cctx != nil {
		s.cctx.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}

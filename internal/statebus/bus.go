// Package statebus carries view-model change notifications to whoever renders
// them. A Change says "re-read this part of the state"; it never carries the
// state itself, so delivery order between changes does not matter.
package statebus

import (
	"context"
	"encoding/json"
	"time"

	"settings-core/internal/entity"
	"settings-core/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	Topic  = "settings.state"
	module = "StateBus"
)

type Change struct {
	Source string            `json:"source"`
	Field  string            `json:"field"`
	Haptic entity.HapticKind `json:"haptic,omitempty"`
	At     time.Time         `json:"at"`
}

type Bus struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

const DefaultBufferSize = 256

func New(log logger.ILogger) *Bus {
	return NewWithBuffer(log, DefaultBufferSize)
}

// NewWithBuffer sets how many changes a slow subscriber may fall behind by
// before publishing blocks.
func NewWithBuffer(log logger.ILogger, bufferSize int) *Bus {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: int64(bufferSize)},
		watermill.NewStdLogger(false, false),
	)
	return &Bus{pubSub: pubSub, logger: log}
}

func (b *Bus) publish(change Change) {
	change.At = time.Now()
	payload, err := json.Marshal(change)
	if err != nil {
		b.logger.Error(module, "Failed to encode change", map[string]interface{}{"error": err})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubSub.Publish(Topic, msg); err != nil {
		b.logger.Debug(module, "Change dropped", map[string]interface{}{"error": err.Error(), "source": change.Source})
	}
}

// StateChanged announces that field of source has a new value.
func (b *Bus) StateChanged(source, field string) {
	b.publish(Change{Source: source, Field: field})
}

// Haptic asks the presentation layer to play feedback.
func (b *Bus) Haptic(source string, kind entity.HapticKind) {
	b.publish(Change{Source: source, Field: "haptic", Haptic: kind})
}

// Subscribe streams changes until ctx is done. The returned channel closes
// when the subscription ends.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Change, error) {
	messages, err := b.pubSub.Subscribe(ctx, Topic)
	if err != nil {
		return nil, err
	}

	out := make(chan Change, 64)
	go func() {
		defer close(out)
		for msg := range messages {
			var change Change
			err := json.Unmarshal(msg.Payload, &change)
			// Ack even on decode errors; a bad payload never becomes valid.
			msg.Ack()
			if err != nil {
				b.logger.Warn(module, "Invalid change payload", map[string]interface{}{"error": err.Error()})
				continue
			}

			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}

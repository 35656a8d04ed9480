package nats

import (
	"testing"

	"settings-core/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	evt, err := DecodeEvent("telemetry.theme_changed", []byte(`{"properties":{"theme":"dark"},"occurred_at":"2026-01-02T03:04:05Z"}`))
	require.NoError(t, err)

	assert.Equal(t, "theme_changed", evt.Name)
	assert.Equal(t, "dark", evt.Properties["theme"])
	assert.Equal(t, 2026, evt.OccurredAt.Year())
}

func TestDecodeEventWithoutProperties(t *testing.T) {
	evt, err := DecodeEvent("telemetry.signed_out", []byte(`{}`))
	require.NoError(t, err)

	assert.NotNil(t, evt.Properties)
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	_, err := DecodeEvent("telemetry.x", []byte("not json"))
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "telemetry.signed_out", Subject(events.NewTelemetryEvent("signed_out", nil)))
}

// Package viewmodel holds the settings screens' state and actions.
//
// Every view-model is a small state container: reads return value snapshots,
// mutations happen under the view-model's lock, and each mutation is announced
// through Events so the presentation layer knows to re-render. Actions that
// call a capability asynchronously return immediately; Wait joins them.
package viewmodel

import (
	"context"

	"settings-core/internal/capability"
	"settings-core/internal/entity"
	"settings-core/internal/failure"
	"settings-core/internal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Source names used in change notifications.
const (
	SourceSettings      = "settings"
	SourceAccount       = "account"
	SourceAppearance    = "appearance"
	SourceNotifications = "notifications"
	SourcePrivacy       = "privacy"
)

// Events receives state change and haptic notifications. *statebus.Bus
// implements it.
type Events interface {
	StateChanged(source, field string)
	Haptic(source string, kind entity.HapticKind)
}

type noopEvents struct{}

func (noopEvents) StateChanged(string, string)      {}
func (noopEvents) Haptic(string, entity.HapticKind) {}

type noopTelemetry struct{}

func (noopTelemetry) Track(string, map[string]string) {}
func (noopTelemetry) SetEnabled(bool)                 {}

type options struct {
	events    Events
	logger    logger.ILogger
	telemetry capability.TelemetrySink
}

type Option func(*options)

func WithEvents(e Events) Option {
	return func(o *options) {
		if e != nil {
			o.events = e
		}
	}
}

func WithLogger(l logger.ILogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTelemetry lets a view-model track completed actions.
func WithTelemetry(t capability.TelemetrySink) Option {
	return func(o *options) {
		if t != nil {
			o.telemetry = t
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		events:    noopEvents{},
		logger:    logger.NewNopLogger(),
		telemetry: noopTelemetry{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// dispatcher runs capability calls off the caller's goroutine. Dispatched work
// is not cancellable: it keeps running even if the caller's context ends.
type dispatcher struct {
	group errgroup.Group
}

func (d *dispatcher) dispatch(ctx context.Context, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	d.group.Go(func() error {
		fn(ctx)
		return nil
	})
}

// Wait blocks until every dispatched action has completed.
func (d *dispatcher) Wait() {
	_ = d.group.Wait()
}

// classify keeps a nil error nil; failure.Classify returns a typed pointer.
func classify(err error) error {
	if err == nil {
		return nil
	}
	return failure.Classify(err)
}

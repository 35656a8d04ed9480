// Package failure classifies every error a settings capability can return.
//
// View-models never look at raw infrastructure errors. They only see a
// *SettingsFailure, its Kind and its user-facing Message.
package failure

import (
	"context"
	"errors"
	"net"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindIncorrectCurrentPassword
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindIncorrectCurrentPassword:
		return "incorrect_current_password"
	case KindTransport:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// transportSentinels are broker and cache errors that mean the backend could
// not be reached.
var transportSentinels = []error{
	context.DeadlineExceeded,
	context.Canceled,
	nats.ErrNoServers,
	nats.ErrConnectionClosed,
	nats.ErrConnectionDraining,
	nats.ErrDisconnected,
	nats.ErrTimeout,
	nats.ErrNoResponders,
	redis.ErrClosed,
}

type SettingsFailure struct {
	Kind  Kind
	Cause error
}

// ErrIncorrectCurrentPassword is returned by ChangePassword when the current
// credential does not match.
var ErrIncorrectCurrentPassword = &SettingsFailure{Kind: KindIncorrectCurrentPassword}

func (f *SettingsFailure) Error() string {
	switch f.Kind {
	case KindIncorrectCurrentPassword:
		return "Current password is incorrect"
	case KindTransport:
		return "Network error. Please check your connection and try again."
	default:
		if f.Cause != nil {
			return f.Cause.Error()
		}
		return "Something went wrong"
	}
}

func (f *SettingsFailure) Unwrap() error {
	return f.Cause
}

// Is matches on Kind so errors.Is(err, ErrIncorrectCurrentPassword) works for
// any failure of that kind.
func (f *SettingsFailure) Is(target error) bool {
	t, ok := target.(*SettingsFailure)
	if !ok {
		return false
	}
	return t.Kind == f.Kind && (t.Cause == nil || errors.Is(f.Cause, t.Cause))
}

func Transport(cause error) *SettingsFailure {
	return &SettingsFailure{Kind: KindTransport, Cause: cause}
}

func Unknown(cause error) *SettingsFailure {
	return &SettingsFailure{Kind: KindUnknown, Cause: cause}
}

// Classify maps any error into the taxonomy. Nil stays nil.
func Classify(err error) *SettingsFailure {
	if err == nil {
		return nil
	}

	var sf *SettingsFailure
	if errors.As(err, &sf) {
		return sf
	}

	for _, sentinel := range transportSentinels {
		if errors.Is(err, sentinel) {
			return Transport(err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return Transport(err)
	}

	return Unknown(err)
}

func KindOf(err error) Kind {
	if sf := Classify(err); sf != nil {
		return sf.Kind
	}
	return KindUnknown
}

// Message returns the text a view-model stores in its error field.
func Message(err error) string {
	if sf := Classify(err); sf != nil {
		return sf.Error()
	}
	return ""
}

package contract

import (
	"context"
	"errors"

	"settings-core/internal/entity"
)

// ErrSnapshotNotFound is returned by Load when no snapshot was saved for the
// profile.
var ErrSnapshotNotFound = errors.New("preferences snapshot not found")

// PreferencesSnapshotRepository persists preferences between settings
// sessions, keyed by profile.
type PreferencesSnapshotRepository interface {
	Save(ctx context.Context, profile string, snapshot entity.PreferencesSnapshot) error
	Load(ctx context.Context, profile string) (entity.PreferencesSnapshot, error)
	Delete(ctx context.Context, profile string) error
}

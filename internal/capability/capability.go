// Package capability defines the contracts a host application satisfies for
// the settings view-models. Each contract has an in-memory variant for tests
// and previews and may have production adapters; the variant is picked when
// the root settings controller is constructed.
package capability

import (
	"context"

	"settings-core/internal/entity"
)

// PreferencesStore is local, synchronous state. It cannot fail.
type PreferencesStore interface {
	Theme() entity.ThemeChoice
	SetTheme(theme entity.ThemeChoice)

	BiometricsEnabled() bool
	SetBiometricsEnabled(enabled bool)
	ScreenLockEnabled() bool
	SetScreenLockEnabled(enabled bool)
	AnalyticsEnabled() bool
	SetAnalyticsEnabled(enabled bool)
	CrashReportingEnabled() bool
	SetCrashReportingEnabled(enabled bool)

	// NotificationSettings returns a copy of the category collection.
	NotificationSettings() []entity.NotificationCategory
	SetNotificationSettings(categories []entity.NotificationCategory)
	// UpdateNotificationSettings mutates the collection in place under the
	// store's lock.
	UpdateNotificationSettings(fn func(categories []entity.NotificationCategory))

	// ResetToDefaults disables every toggle and category and selects the
	// system theme.
	ResetToDefaults()
}

// AccountService reads are synchronous and always reflect the latest state.
// Every fallible operation returns a *failure.SettingsFailure.
type AccountService interface {
	DisplayName() string
	Email() string
	ActiveSessions() []entity.ActiveSession

	UpdateProfile(ctx context.Context, name, email string) error
	ChangePassword(ctx context.Context, current, newPassword string) error
	RevokeSession(ctx context.Context, session entity.ActiveSession) error
	RevokeAllOtherSessions(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	// SignOut never reports failure to the caller.
	SignOut(ctx context.Context)
}

// TelemetrySink is fire-and-forget.
type TelemetrySink interface {
	Track(eventName string, properties map[string]string)
	SetEnabled(enabled bool)
}

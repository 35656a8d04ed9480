// FILE: internal/entity/settings_entity.go
package entity

import (
	"time"
)

type ThemeChoice string

const (
	ThemeSystem ThemeChoice = "system"
	ThemeLight  ThemeChoice = "light"
	ThemeDark   ThemeChoice = "dark"
)

// AllThemes lists the selectable themes in display order.
var AllThemes = []ThemeChoice{ThemeSystem, ThemeLight, ThemeDark}

func (t ThemeChoice) IsValid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}

// DisplayName is the label shown next to the theme picker.
func (t ThemeChoice) DisplayName() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	default:
		return "System"
	}
}

type NotificationCategory struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsEnabled   bool   `json:"is_enabled"`
}

type ActiveSession struct {
	Id         string    `json:"id"`
	DeviceName string    `json:"device_name"`
	Location   string    `json:"location"`
	LastActive time.Time `json:"last_active"`
	IsCurrent  bool      `json:"is_current"`
}

// PreferencesSnapshot is the persisted form of a preferences store.
type PreferencesSnapshot struct {
	Theme                 ThemeChoice            `json:"theme"`
	BiometricsEnabled     bool                   `json:"biometrics_enabled"`
	ScreenLockEnabled     bool                   `json:"screen_lock_enabled"`
	AnalyticsEnabled      bool                   `json:"analytics_enabled"`
	CrashReportingEnabled bool                   `json:"crash_reporting_enabled"`
	NotificationSettings  []NotificationCategory `json:"notification_settings"`
	SavedAt               time.Time              `json:"saved_at"`
}

type HapticKind string

const (
	HapticSuccess   HapticKind = "success"
	HapticSelection HapticKind = "selection"
)

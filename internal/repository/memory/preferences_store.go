package memory

import (
	"sync"
	"time"

	"settings-core/internal/constant"
	"settings-core/internal/entity"
)

// PreferencesStore keeps preferences in process memory. It satisfies
// capability.PreferencesStore.
type PreferencesStore struct {
	mu sync.RWMutex

	theme                 entity.ThemeChoice
	biometricsEnabled     bool
	screenLockEnabled     bool
	analyticsEnabled      bool
	crashReportingEnabled bool
	notificationSettings  []entity.NotificationCategory
}

func NewPreferencesStore() *PreferencesStore {
	return &PreferencesStore{
		theme:                 entity.ThemeSystem,
		biometricsEnabled:     false,
		screenLockEnabled:     true,
		analyticsEnabled:      true,
		crashReportingEnabled: true,
		notificationSettings:  constant.DefaultNotificationCategories(),
	}
}

// NewPreferencesStoreFromSnapshot restores a store persisted by a previous
// settings session.
func NewPreferencesStoreFromSnapshot(snapshot entity.PreferencesSnapshot) *PreferencesStore {
	s := NewPreferencesStore()
	s.Restore(snapshot)
	return s
}

func (s *PreferencesStore) Theme() entity.ThemeChoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *PreferencesStore) SetTheme(theme entity.ThemeChoice) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
}

func (s *PreferencesStore) BiometricsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.biometricsEnabled
}

func (s *PreferencesStore) SetBiometricsEnabled(enabled bool) {
	s.mu.Lock()
	s.biometricsEnabled = enabled
	s.mu.Unlock()
}

func (s *PreferencesStore) ScreenLockEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screenLockEnabled
}

func (s *PreferencesStore) SetScreenLockEnabled(enabled bool) {
	s.mu.Lock()
	s.screenLockEnabled = enabled
	s.mu.Unlock()
}

func (s *PreferencesStore) AnalyticsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyticsEnabled
}

func (s *PreferencesStore) SetAnalyticsEnabled(enabled bool) {
	s.mu.Lock()
	s.analyticsEnabled = enabled
	s.mu.Unlock()
}

func (s *PreferencesStore) CrashReportingEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.crashReportingEnabled
}

func (s *PreferencesStore) SetCrashReportingEnabled(enabled bool) {
	s.mu.Lock()
	s.crashReportingEnabled = enabled
	s.mu.Unlock()
}

func (s *PreferencesStore) NotificationSettings() []entity.NotificationCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.NotificationCategory, len(s.notificationSettings))
	copy(out, s.notificationSettings)
	return out
}

func (s *PreferencesStore) SetNotificationSettings(categories []entity.NotificationCategory) {
	cp := make([]entity.NotificationCategory, len(categories))
	copy(cp, categories)

	s.mu.Lock()
	s.notificationSettings = cp
	s.mu.Unlock()
}

func (s *PreferencesStore) UpdateNotificationSettings(fn func(categories []entity.NotificationCategory)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.notificationSettings)
}

func (s *PreferencesStore) ResetToDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = entity.ThemeSystem
	s.biometricsEnabled = false
	s.screenLockEnabled = false
	s.analyticsEnabled = false
	s.crashReportingEnabled = false
	for i := range s.notificationSettings {
		s.notificationSettings[i].IsEnabled = false
	}
}

func (s *PreferencesStore) Snapshot() entity.PreferencesSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]entity.NotificationCategory, len(s.notificationSettings))
	copy(categories, s.notificationSettings)

	return entity.PreferencesSnapshot{
		Theme:                 s.theme,
		BiometricsEnabled:     s.biometricsEnabled,
		ScreenLockEnabled:     s.screenLockEnabled,
		AnalyticsEnabled:      s.analyticsEnabled,
		CrashReportingEnabled: s.crashReportingEnabled,
		NotificationSettings:  categories,
		SavedAt:               time.Now(),
	}
}

// Restore replaces the store contents. An unknown theme falls back to system
// and an empty category list keeps the defaults.
func (s *PreferencesStore) Restore(snapshot entity.PreferencesSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = snapshot.Theme
	if !s.theme.IsValid() {
		s.theme = entity.ThemeSystem
	}
	s.biometricsEnabled = snapshot.BiometricsEnabled
	s.screenLockEnabled = snapshot.ScreenLockEnabled
	s.analyticsEnabled = snapshot.AnalyticsEnabled
	s.crashReportingEnabled = snapshot.CrashReportingEnabled
	if len(snapshot.NotificationSettings) > 0 {
		s.notificationSettings = make([]entity.NotificationCategory, len(snapshot.NotificationSettings))
		copy(s.notificationSettings, snapshot.NotificationSettings)
	}
}

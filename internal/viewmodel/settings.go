package viewmodel

import (
	"context"
	"errors"
	"sync"

	"settings-core/internal/capability"
	"settings-core/internal/constant"
	"settings-core/internal/entity"
	"settings-core/internal/pkg/logger"
	"settings-core/internal/repository/memory"
	"settings-core/internal/service"
)

const settingsModule = "SettingsViewModel"

var ErrUnknownDestination = errors.New("unknown destination")

// Dependencies are injected once per settings session. Nil capabilities are
// replaced by in-memory variants.
type Dependencies struct {
	Preferences capability.PreferencesStore
	Account     capability.AccountService
	Telemetry   capability.TelemetrySink
	Events      Events
	Logger      logger.ILogger
	Exporter    DataExporter
	Catalog     []entity.SearchCatalogEntry
}

type SettingsState struct {
	Path           []entity.Destination        `json:"path"`
	SearchText     string                      `json:"search_text"`
	IsSearchActive bool                        `json:"is_search_active"`
	SearchResults  []entity.SearchCatalogEntry `json:"search_results"`
	IsSigningOut   bool                        `json:"is_signing_out"`
	SignedOut      bool                        `json:"signed_out"`
}

// Settings is the root controller of one settings session. It owns the
// capability instances and hands the same instances to every feature
// view-model it creates, so a mutation made through one is seen by all.
type Settings struct {
	dispatcher

	preferences capability.PreferencesStore
	account     capability.AccountService
	telemetry   capability.TelemetrySink
	exporter    DataExporter
	opts        options

	search *SearchIndex
	nav    NavigationStack

	mu           sync.Mutex
	searchText   string
	isSigningOut bool
	signedOut    bool

	vmMu            sync.Mutex
	accountVM       *AccountViewModel
	appearanceVM    *AppearanceViewModel
	notificationsVM *NotificationsViewModel
	privacyVM       *PrivacyViewModel
}

func NewSettings(deps Dependencies) *Settings {
	opts := buildOptions([]Option{WithEvents(deps.Events), WithLogger(deps.Logger)})

	if deps.Preferences == nil {
		deps.Preferences = memory.NewPreferencesStore()
	}
	if deps.Account == nil {
		deps.Account = service.NewMockAccountService(service.WithLogger(opts.logger))
	}
	if deps.Telemetry == nil {
		deps.Telemetry = service.NewLoggingTelemetrySink(opts.logger, deps.Preferences.AnalyticsEnabled())
	}
	if deps.Catalog == nil {
		deps.Catalog = constant.SearchCatalog()
	}
	opts.telemetry = deps.Telemetry

	return &Settings{
		preferences: deps.Preferences,
		account:     deps.Account,
		telemetry:   deps.Telemetry,
		exporter:    deps.Exporter,
		opts:        opts,
		search:      NewSearchIndex(deps.Catalog),
	}
}

func (s *Settings) Preferences() capability.PreferencesStore { return s.preferences }

func (s *Settings) AccountService() capability.AccountService { return s.account }

func (s *Settings) Telemetry() capability.TelemetrySink { return s.telemetry }

func (s *Settings) featureOptions() []Option {
	return []Option{
		WithEvents(s.opts.events),
		WithLogger(s.opts.logger),
		WithTelemetry(s.telemetry),
	}
}

// Feature view-models are created on first use and reused afterwards.

func (s *Settings) Account() *AccountViewModel {
	s.vmMu.Lock()
	defer s.vmMu.Unlock()
	if s.accountVM == nil {
		s.accountVM = NewAccountViewModel(s.account, s.featureOptions()...)
	}
	return s.accountVM
}

func (s *Settings) Appearance() *AppearanceViewModel {
	s.vmMu.Lock()
	defer s.vmMu.Unlock()
	if s.appearanceVM == nil {
		s.appearanceVM = NewAppearanceViewModel(s.preferences, s.featureOptions()...)
	}
	return s.appearanceVM
}

func (s *Settings) Notifications() *NotificationsViewModel {
	s.vmMu.Lock()
	defer s.vmMu.Unlock()
	if s.notificationsVM == nil {
		s.notificationsVM = NewNotificationsViewModel(s.preferences, s.featureOptions()...)
	}
	return s.notificationsVM
}

func (s *Settings) Privacy() *PrivacyViewModel {
	s.vmMu.Lock()
	defer s.vmMu.Unlock()
	if s.privacyVM == nil {
		s.privacyVM = NewPrivacyViewModel(s.preferences, s.telemetry, s.exporter, s.featureOptions()...)
	}
	return s.privacyVM
}

// Navigation

func (s *Settings) Navigate(to entity.Destination) error {
	if !to.IsValid() {
		return ErrUnknownDestination
	}
	s.nav.Push(to)
	s.opts.events.StateChanged(SourceSettings, "path")
	return nil
}

func (s *Settings) Back() bool {
	if _, ok := s.nav.Pop(); !ok {
		return false
	}
	s.opts.events.StateChanged(SourceSettings, "path")
	return true
}

func (s *Settings) PopToRoot() {
	s.nav.PopToRoot()
	s.opts.events.StateChanged(SourceSettings, "path")
}

func (s *Settings) Path() []entity.Destination {
	return s.nav.Path()
}

// Search

func (s *Settings) SetSearchText(text string) {
	s.mu.Lock()
	s.searchText = text
	s.mu.Unlock()
	s.opts.events.StateChanged(SourceSettings, "search")
}

func (s *Settings) SearchText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchText
}

func (s *Settings) IsSearchActive() bool {
	return NormalizeQuery(s.SearchText()) != ""
}

// SearchResults is empty while search is inactive.
func (s *Settings) SearchResults() []entity.SearchCatalogEntry {
	results := s.search.Search(s.SearchText())
	if results == nil {
		return []entity.SearchCatalogEntry{}
	}
	return results
}

// Session

// SignOut ends the session. It cannot fail; it reports false only when a
// sign-out is already running.
func (s *Settings) SignOut(ctx context.Context) bool {
	s.mu.Lock()
	if s.isSigningOut {
		s.mu.Unlock()
		return false
	}
	s.isSigningOut = true
	s.mu.Unlock()
	s.opts.events.StateChanged(SourceSettings, "sign_out")

	s.telemetry.Track(constant.EventSignedOut, nil)
	s.opts.logger.Info(settingsModule, "Signing out", nil)

	s.dispatch(ctx, func(ctx context.Context) {
		s.account.SignOut(ctx)

		s.mu.Lock()
		s.isSigningOut = false
		s.signedOut = true
		s.mu.Unlock()
		s.opts.events.StateChanged(SourceSettings, "sign_out")
	})
	return true
}

func (s *Settings) IsSigningOut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isSigningOut
}

// ResetToDefaults resets the preference store. Analytics ends up disabled, so
// the telemetry sink is switched off with it.
func (s *Settings) ResetToDefaults() {
	s.telemetry.Track(constant.EventSettingsReset, nil)
	s.preferences.ResetToDefaults()
	s.telemetry.SetEnabled(s.preferences.AnalyticsEnabled())

	s.opts.events.StateChanged(SourceAppearance, "theme")
	s.opts.events.StateChanged(SourceNotifications, "categories")
	s.opts.events.StateChanged(SourcePrivacy, "toggles")
	s.opts.logger.Info(settingsModule, "Preferences reset to defaults", nil)
}

func (s *Settings) State() SettingsState {
	s.mu.Lock()
	text := s.searchText
	st := SettingsState{
		SearchText:   text,
		IsSigningOut: s.isSigningOut,
		SignedOut:    s.signedOut,
	}
	s.mu.Unlock()

	st.Path = s.nav.Path()
	st.IsSearchActive = NormalizeQuery(text) != ""
	st.SearchResults = s.search.Search(text)
	if st.SearchResults == nil {
		st.SearchResults = []entity.SearchCatalogEntry{}
	}
	return st
}

// Wait joins every in-flight action of the root and its feature view-models.
func (s *Settings) Wait() {
	s.dispatcher.Wait()

	s.vmMu.Lock()
	account, privacy := s.accountVM, s.privacyVM
	s.vmMu.Unlock()

	if account != nil {
		account.Wait()
	}
	if privacy != nil {
		privacy.Wait()
	}
}

package viewmodel

import (
	"errors"

	"settings-core/internal/capability"
	"settings-core/internal/constant"
	"settings-core/internal/entity"
)

var ErrInvalidTheme = errors.New("invalid theme")

// AppearanceViewModel is a pass-through binding to the store's theme.
type AppearanceViewModel struct {
	store capability.PreferencesStore
	opts  options
}

func NewAppearanceViewModel(store capability.PreferencesStore, opts ...Option) *AppearanceViewModel {
	return &AppearanceViewModel{store: store, opts: buildOptions(opts)}
}

func (vm *AppearanceViewModel) Theme() entity.ThemeChoice {
	return vm.store.Theme()
}

// SetTheme writes through to the store and plays selection feedback.
func (vm *AppearanceViewModel) SetTheme(theme entity.ThemeChoice) error {
	if !theme.IsValid() {
		return ErrInvalidTheme
	}

	vm.store.SetTheme(theme)
	vm.opts.events.Haptic(SourceAppearance, entity.HapticSelection)
	vm.opts.events.StateChanged(SourceAppearance, "theme")
	vm.opts.telemetry.Track(constant.EventThemeChanged, map[string]string{"theme": string(theme)})
	return nil
}

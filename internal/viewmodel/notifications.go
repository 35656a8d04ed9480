package viewmodel

import (
	"settings-core/internal/capability"
	"settings-core/internal/entity"
)

type NotificationsState struct {
	Categories  []entity.NotificationCategory `json:"categories"`
	AllEnabled  bool                          `json:"all_enabled"`
	NoneEnabled bool                          `json:"none_enabled"`
}

// NotificationsViewModel edits the store's notification categories in place.
type NotificationsViewModel struct {
	store capability.PreferencesStore
	opts  options
}

func NewNotificationsViewModel(store capability.PreferencesStore, opts ...Option) *NotificationsViewModel {
	return &NotificationsViewModel{store: store, opts: buildOptions(opts)}
}

func (vm *NotificationsViewModel) Categories() []entity.NotificationCategory {
	return vm.store.NotificationSettings()
}

// Toggle flips the category with the given id and reports whether it exists.
func (vm *NotificationsViewModel) Toggle(categoryID string) bool {
	found := false
	vm.store.UpdateNotificationSettings(func(categories []entity.NotificationCategory) {
		for i := range categories {
			if categories[i].Id == categoryID {
				categories[i].IsEnabled = !categories[i].IsEnabled
				found = true
				return
			}
		}
	})
	if !found {
		return false
	}

	vm.opts.events.Haptic(SourceNotifications, entity.HapticSelection)
	vm.opts.events.StateChanged(SourceNotifications, "categories")
	return true
}

func (vm *NotificationsViewModel) setAll(enabled bool) {
	vm.store.UpdateNotificationSettings(func(categories []entity.NotificationCategory) {
		for i := range categories {
			categories[i].IsEnabled = enabled
		}
	})
	vm.opts.events.StateChanged(SourceNotifications, "categories")
}

func (vm *NotificationsViewModel) EnableAll() { vm.setAll(true) }

func (vm *NotificationsViewModel) DisableAll() { vm.setAll(false) }

// AllEnabled is true for an empty collection.
func (vm *NotificationsViewModel) AllEnabled() bool {
	return allEnabled(vm.store.NotificationSettings())
}

// NoneEnabled is true for an empty collection.
func (vm *NotificationsViewModel) NoneEnabled() bool {
	return noneEnabled(vm.store.NotificationSettings())
}

func (vm *NotificationsViewModel) State() NotificationsState {
	categories := vm.store.NotificationSettings()
	return NotificationsState{
		Categories:  categories,
		AllEnabled:  allEnabled(categories),
		NoneEnabled: noneEnabled(categories),
	}
}

func allEnabled(categories []entity.NotificationCategory) bool {
	for _, c := range categories {
		if !c.IsEnabled {
			return false
		}
	}
	return true
}

func noneEnabled(categories []entity.NotificationCategory) bool {
	for _, c := range categories {
		if c.IsEnabled {
			return false
		}
	}
	return true
}

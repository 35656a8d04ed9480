package constant

import (
	"settings-core/internal/entity"
)

const (
	SectionAccount       = "Account"
	SectionAppearance    = "Appearance"
	SectionNotifications = "Notifications"
	SectionPrivacy       = "Privacy & Security"
	SectionAbout         = "About"
)

// Mock account defaults. MockPassword is the only credential the mock
// account service accepts as "current".
const (
	MockDisplayName = "Alex Morgan"
	MockEmail       = "alex.morgan@example.com"
	MockPassword    = "password"
)

// Telemetry event names.
const (
	EventProfileUpdated       = "profile_updated"
	EventPasswordChanged      = "password_changed"
	EventSessionRevoked       = "session_revoked"
	EventOtherSessionsRevoked = "other_sessions_revoked"
	EventAccountDeleted       = "account_deleted"
	EventDataExportCompleted  = "data_export_completed"
	EventSignedOut            = "signed_out"
	EventThemeChanged         = "theme_changed"
	EventSettingsReset        = "settings_reset"
)

var searchCatalog = []entity.SearchCatalogEntry{
	{Id: "edit_profile", Section: SectionAccount, Title: "Edit Profile", Destination: entity.DestinationEditProfile, Icon: "person.crop.circle"},
	{Id: "change_password", Section: SectionAccount, Title: "Change Password", Destination: entity.DestinationChangePassword, Icon: "key"},
	{Id: "active_sessions", Section: SectionAccount, Title: "Active Sessions", Destination: entity.DestinationActiveSessions, Icon: "iphone.and.arrow.forward"},
	{Id: "theme", Section: SectionAppearance, Title: "Theme", Destination: entity.DestinationAppearance, Icon: "paintbrush"},
	{Id: "notification_preferences", Section: SectionNotifications, Title: "Notification Preferences", Destination: entity.DestinationNotifications, Icon: "bell"},
	{Id: "biometrics", Section: SectionPrivacy, Title: "Biometric Unlock", Destination: entity.DestinationPrivacy, Icon: "faceid"},
	{Id: "screen_lock", Section: SectionPrivacy, Title: "Screen Lock", Destination: entity.DestinationPrivacy, Icon: "lock"},
	{Id: "analytics", Section: SectionPrivacy, Title: "Usage Analytics", Destination: entity.DestinationPrivacy, Icon: "chart.bar"},
	{Id: "crash_reports", Section: SectionPrivacy, Title: "Crash Reports", Destination: entity.DestinationPrivacy, Icon: "ant"},
	{Id: "export_data", Section: SectionPrivacy, Title: "Export My Data", Destination: entity.DestinationPrivacy, Icon: "square.and.arrow.up"},
	{Id: "about", Section: SectionAbout, Title: "Version & Support", Destination: entity.DestinationAbout, Icon: "info.circle"},
	{Id: "licenses", Section: SectionAbout, Title: "Open Source Licenses", Destination: entity.DestinationLicenses, Icon: "doc.text"},
}

// SearchCatalog returns a copy of the searchable settings entries in display
// order.
func SearchCatalog() []entity.SearchCatalogEntry {
	out := make([]entity.SearchCatalogEntry, len(searchCatalog))
	copy(out, searchCatalog)
	return out
}

// DefaultNotificationCategories returns a fresh collection; callers own it.
func DefaultNotificationCategories() []entity.NotificationCategory {
	return []entity.NotificationCategory{
		{Id: "messages", Title: "Messages", Description: "Direct messages and replies", IsEnabled: true},
		{Id: "mentions", Title: "Mentions", Description: "When someone mentions you", IsEnabled: true},
		{Id: "security", Title: "Security Alerts", Description: "New sign-ins and password changes", IsEnabled: true},
		{Id: "updates", Title: "Product Updates", Description: "New features and improvements", IsEnabled: false},
		{Id: "marketing", Title: "Tips & Offers", Description: "Occasional tips and promotions", IsEnabled: false},
	}
}

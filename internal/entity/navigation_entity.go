package entity

// Destination identifies a settings screen pushed onto the navigation stack.
type Destination string

const (
	DestinationAccount        Destination = "account"
	DestinationEditProfile    Destination = "edit_profile"
	DestinationChangePassword Destination = "change_password"
	DestinationActiveSessions Destination = "active_sessions"
	DestinationAppearance     Destination = "appearance"
	DestinationNotifications  Destination = "notifications"
	DestinationPrivacy        Destination = "privacy"
	DestinationAbout          Destination = "about"
	DestinationLicenses       Destination = "licenses"
)

var AllDestinations = []Destination{
	DestinationAccount,
	DestinationEditProfile,
	DestinationChangePassword,
	DestinationActiveSessions,
	DestinationAppearance,
	DestinationNotifications,
	DestinationPrivacy,
	DestinationAbout,
	DestinationLicenses,
}

func (d Destination) IsValid() bool {
	for _, known := range AllDestinations {
		if d == known {
			return true
		}
	}
	return false
}

type SearchCatalogEntry struct {
	Id          string      `json:"id"`
	Section     string      `json:"section"`
	Title       string      `json:"title"`
	Destination Destination `json:"destination"`
	Icon        string      `json:"icon"`
}

package dto

import "settings-core/internal/entity"

type NavigateRequest struct {
	Destination entity.Destination `json:"destination" validate:"required"`
}

type SearchResponse struct {
	Query    string                      `json:"query"`
	IsActive bool                        `json:"is_active"`
	Results  []entity.SearchCatalogEntry `json:"results"`
}

type SetThemeRequest struct {
	Theme entity.ThemeChoice `json:"theme" validate:"required,oneof=system light dark"`
}

// ToggleRequest uses a pointer so an explicit false passes `required`.
type ToggleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

// ConfirmRequest carries the user's answer to a destructive-action prompt.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// ActionResponse reports whether an asynchronous action was started and the
// state right after dispatch. Poll the state endpoint or the stream for the
// outcome.
type ActionResponse[T any] struct {
	Started bool `json:"started"`
	State   T    `json:"state"`
}

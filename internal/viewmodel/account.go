package viewmodel

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"settings-core/internal/capability"
	"settings-core/internal/constant"
	"settings-core/internal/entity"
	"settings-core/internal/failure"
)

const accountModule = "AccountViewModel"

// AccountState is a point-in-time copy of everything the account screens
// render. Password fields are never serialized.
type AccountState struct {
	DisplayName       string                 `json:"display_name"`
	Email             string                 `json:"email"`
	ActiveSessions    []entity.ActiveSession `json:"active_sessions"`
	OtherSessionCount int                    `json:"other_session_count"`

	DraftName        string `json:"draft_name"`
	DraftEmail       string `json:"draft_email"`
	IsProfileChanged bool   `json:"is_profile_changed"`
	IsProfileValid   bool   `json:"is_profile_valid"`
	IsSavingProfile  bool   `json:"is_saving_profile"`
	ProfileSaved     bool   `json:"profile_saved"`
	ProfileError     string `json:"profile_error,omitempty"`

	CurrentPassword   string           `json:"-"`
	NewPassword       string           `json:"-"`
	ConfirmPassword   string           `json:"-"`
	IsPasswordValid   bool             `json:"is_password_valid"`
	PasswordStrength  PasswordStrength `json:"password_strength"`
	IsSavingPassword  bool             `json:"is_saving_password"`
	PasswordChanged   bool             `json:"password_changed"`
	PasswordError     string           `json:"password_error,omitempty"`
	PasswordErrorKind string           `json:"password_error_kind,omitempty"`

	IsRevokingSession    bool   `json:"is_revoking_session"`
	IsRevokingAllOthers  bool   `json:"is_revoking_all_others"`
	ConfirmRevokeAll     bool   `json:"confirm_revoke_all"`
	RevokeSessionError   string `json:"revoke_session_error,omitempty"`
	RevokeAllError       string `json:"revoke_all_error,omitempty"`
	IsDeletingAccount    bool   `json:"is_deleting_account"`
	ConfirmDeleteAccount bool   `json:"confirm_delete_account"`
	AccountDeleted       bool   `json:"account_deleted"`
	DeleteError          string `json:"delete_error,omitempty"`
}

// AccountViewModel mediates profile edits, password changes, session
// management and account deletion. Name, email and sessions are always read
// from the service; only the drafts and password fields live here.
type AccountViewModel struct {
	dispatcher

	account capability.AccountService
	opts    options

	mu sync.Mutex

	draftName  string
	draftEmail string

	isSavingProfile bool
	profileSaved    bool
	profileErr      error

	currentPassword  string
	newPassword      string
	confirmPassword  string
	isSavingPassword bool
	passwordChanged  bool
	passwordErr      error

	isRevokingSession   bool
	isRevokingAllOthers bool
	confirmRevokeAll    bool
	revokeSessionErr    error
	revokeAllErr        error

	isDeletingAccount    bool
	confirmDeleteAccount bool
	accountDeleted       bool
	deleteErr            error
}

func NewAccountViewModel(account capability.AccountService, opts ...Option) *AccountViewModel {
	return &AccountViewModel{
		account:    account,
		opts:       buildOptions(opts),
		draftName:  account.DisplayName(),
		draftEmail: account.Email(),
	}
}

func (vm *AccountViewModel) changed(fields ...string) {
	for _, f := range fields {
		vm.opts.events.StateChanged(SourceAccount, f)
	}
}

// Read-through accessors. These never cache.

func (vm *AccountViewModel) DisplayName() string { return vm.account.DisplayName() }

func (vm *AccountViewModel) Email() string { return vm.account.Email() }

func (vm *AccountViewModel) ActiveSessions() []entity.ActiveSession {
	return vm.account.ActiveSessions()
}

func (vm *AccountViewModel) OtherSessionCount() int {
	n := 0
	for _, s := range vm.account.ActiveSessions() {
		if !s.IsCurrent {
			n++
		}
	}
	return n
}

// Profile

func (vm *AccountViewModel) SetDraftName(name string) {
	vm.mu.Lock()
	vm.draftName = name
	vm.mu.Unlock()
	vm.changed("profile")
}

func (vm *AccountViewModel) SetDraftEmail(email string) {
	vm.mu.Lock()
	vm.draftEmail = email
	vm.mu.Unlock()
	vm.changed("profile")
}

// ResetProfileDraft re-seeds the drafts from the service.
func (vm *AccountViewModel) ResetProfileDraft() {
	vm.mu.Lock()
	vm.draftName = vm.account.DisplayName()
	vm.draftEmail = vm.account.Email()
	vm.mu.Unlock()
	vm.changed("profile")
}

func isProfileValid(name, email string) bool {
	return strings.TrimSpace(name) != "" &&
		strings.Contains(email, "@") &&
		strings.Contains(email, ".")
}

func (vm *AccountViewModel) profileChangedLocked() bool {
	return vm.draftName != vm.account.DisplayName() || vm.draftEmail != vm.account.Email()
}

func (vm *AccountViewModel) IsProfileValid() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return isProfileValid(vm.draftName, vm.draftEmail)
}

func (vm *AccountViewModel) IsProfileChanged() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.profileChangedLocked()
}

// SaveProfile starts a save attempt and reports whether one was started. It
// does nothing when the drafts are invalid or unchanged, or while another
// save is in flight.
func (vm *AccountViewModel) SaveProfile(ctx context.Context) bool {
	vm.mu.Lock()
	if vm.isSavingProfile || !isProfileValid(vm.draftName, vm.draftEmail) || !vm.profileChangedLocked() {
		vm.mu.Unlock()
		return false
	}
	vm.isSavingProfile = true
	vm.profileSaved = false
	vm.profileErr = nil
	name, email := vm.draftName, vm.draftEmail
	vm.mu.Unlock()
	vm.changed("profile")

	vm.opts.logger.Info(accountModule, "Saving profile", map[string]interface{}{"email": email})

	vm.dispatch(ctx, func(ctx context.Context) {
		err := vm.account.UpdateProfile(ctx, name, email)

		vm.mu.Lock()
		vm.isSavingProfile = false
		if err != nil {
			vm.profileErr = classify(err)
		} else {
			vm.profileSaved = true
		}
		vm.mu.Unlock()

		if err != nil {
			vm.opts.logger.Warn(accountModule, "Profile save failed", map[string]interface{}{"error": err.Error()})
		} else {
			vm.opts.events.Haptic(SourceAccount, entity.HapticSuccess)
			vm.opts.telemetry.Track(constant.EventProfileUpdated, nil)
		}
		vm.changed("profile")
	})
	return true
}

// Password

func (vm *AccountViewModel) SetCurrentPassword(pw string) {
	vm.mu.Lock()
	vm.currentPassword = pw
	vm.mu.Unlock()
	vm.changed("password")
}

func (vm *AccountViewModel) SetNewPassword(pw string) {
	vm.mu.Lock()
	vm.newPassword = pw
	vm.mu.Unlock()
	vm.changed("password")
}

func (vm *AccountViewModel) SetConfirmPassword(pw string) {
	vm.mu.Lock()
	vm.confirmPassword = pw
	vm.mu.Unlock()
	vm.changed("password")
}

func (vm *AccountViewModel) passwordValidLocked() bool {
	return vm.currentPassword != "" &&
		utf8.RuneCountInString(vm.newPassword) >= MinPasswordLength &&
		vm.newPassword == vm.confirmPassword
}

func (vm *AccountViewModel) IsPasswordValid() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.passwordValidLocked()
}

// PasswordStrength scores the new password field.
func (vm *AccountViewModel) PasswordStrength() PasswordStrength {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return EvaluatePasswordStrength(vm.newPassword)
}

// PasswordFailure returns the last change attempt's classified failure, or
// nil. Use failure.KindOf to tell a wrong current password from a transport
// problem.
func (vm *AccountViewModel) PasswordFailure() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.passwordErr
}

// SavePassword starts a password change. On success all three fields are
// cleared; on failure they are kept so the user can correct them.
func (vm *AccountViewModel) SavePassword(ctx context.Context) bool {
	vm.mu.Lock()
	if vm.isSavingPassword || !vm.passwordValidLocked() {
		vm.mu.Unlock()
		return false
	}
	vm.isSavingPassword = true
	vm.passwordChanged = false
	vm.passwordErr = nil
	current, next := vm.currentPassword, vm.newPassword
	vm.mu.Unlock()
	vm.changed("password")

	vm.dispatch(ctx, func(ctx context.Context) {
		err := vm.account.ChangePassword(ctx, current, next)

		vm.mu.Lock()
		vm.isSavingPassword = false
		if err != nil {
			vm.passwordErr = classify(err)
		} else {
			vm.passwordChanged = true
			vm.currentPassword = ""
			vm.newPassword = ""
			vm.confirmPassword = ""
		}
		vm.mu.Unlock()

		if err != nil {
			vm.opts.logger.Warn(accountModule, "Password change failed", map[string]interface{}{
				"kind": failure.KindOf(err).String(),
			})
		} else {
			vm.opts.events.Haptic(SourceAccount, entity.HapticSuccess)
			vm.opts.telemetry.Track(constant.EventPasswordChanged, nil)
		}
		vm.changed("password")
	})
	return true
}

// Sessions

func (vm *AccountViewModel) RevokeSession(ctx context.Context, session entity.ActiveSession) bool {
	vm.mu.Lock()
	if vm.isRevokingSession {
		vm.mu.Unlock()
		return false
	}
	vm.isRevokingSession = true
	vm.revokeSessionErr = nil
	vm.mu.Unlock()
	vm.changed("sessions")

	vm.dispatch(ctx, func(ctx context.Context) {
		err := vm.account.RevokeSession(ctx, session)

		vm.mu.Lock()
		vm.isRevokingSession = false
		vm.revokeSessionErr = classify(err)
		vm.mu.Unlock()

		if err != nil {
			vm.opts.logger.Warn(accountModule, "Session revoke failed", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		} else {
			vm.opts.telemetry.Track(constant.EventSessionRevoked, map[string]string{"device": session.DeviceName})
		}
		vm.changed("sessions")
	})
	return true
}

// SetConfirmRevokeAll records the user's answer to the "sign out all other
// devices" confirmation.
func (vm *AccountViewModel) SetConfirmRevokeAll(confirmed bool) {
	vm.mu.Lock()
	vm.confirmRevokeAll = confirmed
	vm.mu.Unlock()
	vm.changed("sessions")
}

// RevokeAllOtherSessions requires a prior SetConfirmRevokeAll(true). The
// confirmation is consumed when the call completes, whatever the outcome.
func (vm *AccountViewModel) RevokeAllOtherSessions(ctx context.Context) bool {
	vm.mu.Lock()
	if vm.isRevokingAllOthers || !vm.confirmRevokeAll {
		vm.mu.Unlock()
		return false
	}
	vm.isRevokingAllOthers = true
	vm.revokeAllErr = nil
	vm.mu.Unlock()
	vm.changed("sessions")

	vm.dispatch(ctx, func(ctx context.Context) {
		err := vm.account.RevokeAllOtherSessions(ctx)

		vm.mu.Lock()
		vm.isRevokingAllOthers = false
		vm.confirmRevokeAll = false
		vm.revokeAllErr = classify(err)
		vm.mu.Unlock()

		if err != nil {
			vm.opts.logger.Warn(accountModule, "Revoke all other sessions failed", map[string]interface{}{"error": err.Error()})
		} else {
			vm.opts.events.Haptic(SourceAccount, entity.HapticSuccess)
			vm.opts.telemetry.Track(constant.EventOtherSessionsRevoked, nil)
		}
		vm.changed("sessions")
	})
	return true
}

// Delete account

func (vm *AccountViewModel) SetConfirmDeleteAccount(confirmed bool) {
	vm.mu.Lock()
	vm.confirmDeleteAccount = confirmed
	vm.mu.Unlock()
	vm.changed("delete")
}

// DeleteAccount requires a prior SetConfirmDeleteAccount(true). A failed
// attempt keeps the confirmation so the user can retry directly.
func (vm *AccountViewModel) DeleteAccount(ctx context.Context) bool {
	vm.mu.Lock()
	if vm.isDeletingAccount || vm.accountDeleted || !vm.confirmDeleteAccount {
		vm.mu.Unlock()
		return false
	}
	vm.isDeletingAccount = true
	vm.deleteErr = nil
	vm.mu.Unlock()
	vm.changed("delete")

	vm.opts.logger.Warn(accountModule, "Deleting account", nil)

	vm.dispatch(ctx, func(ctx context.Context) {
		err := vm.account.DeleteAccount(ctx)

		vm.mu.Lock()
		vm.isDeletingAccount = false
		if err != nil {
			vm.deleteErr = classify(err)
		} else {
			vm.accountDeleted = true
			vm.confirmDeleteAccount = false
		}
		vm.mu.Unlock()

		if err != nil {
			vm.opts.logger.Error(accountModule, "Account deletion failed", map[string]interface{}{"error": err})
		} else {
			vm.opts.telemetry.Track(constant.EventAccountDeleted, nil)
		}
		vm.changed("delete")
	})
	return true
}

// ClearErrors dismisses every displayed error and success flag.
func (vm *AccountViewModel) ClearErrors() {
	vm.mu.Lock()
	vm.profileErr = nil
	vm.profileSaved = false
	vm.passwordErr = nil
	vm.passwordChanged = false
	vm.revokeSessionErr = nil
	vm.revokeAllErr = nil
	vm.deleteErr = nil
	vm.mu.Unlock()
	vm.changed("profile", "password", "sessions", "delete")
}

func (vm *AccountViewModel) State() AccountState {
	sessions := vm.account.ActiveSessions()
	others := 0
	for _, s := range sessions {
		if !s.IsCurrent {
			others++
		}
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	st := AccountState{
		DisplayName:       vm.account.DisplayName(),
		Email:             vm.account.Email(),
		ActiveSessions:    sessions,
		OtherSessionCount: others,

		DraftName:        vm.draftName,
		DraftEmail:       vm.draftEmail,
		IsProfileChanged: vm.profileChangedLocked(),
		IsProfileValid:   isProfileValid(vm.draftName, vm.draftEmail),
		IsSavingProfile:  vm.isSavingProfile,
		ProfileSaved:     vm.profileSaved,
		ProfileError:     failure.Message(vm.profileErr),

		CurrentPassword:  vm.currentPassword,
		NewPassword:      vm.newPassword,
		ConfirmPassword:  vm.confirmPassword,
		IsPasswordValid:  vm.passwordValidLocked(),
		PasswordStrength: EvaluatePasswordStrength(vm.newPassword),
		IsSavingPassword: vm.isSavingPassword,
		PasswordChanged:  vm.passwordChanged,
		PasswordError:    failure.Message(vm.passwordErr),

		IsRevokingSession:    vm.isRevokingSession,
		IsRevokingAllOthers:  vm.isRevokingAllOthers,
		ConfirmRevokeAll:     vm.confirmRevokeAll,
		RevokeSessionError:   failure.Message(vm.revokeSessionErr),
		RevokeAllError:       failure.Message(vm.revokeAllErr),
		IsDeletingAccount:    vm.isDeletingAccount,
		ConfirmDeleteAccount: vm.confirmDeleteAccount,
		AccountDeleted:       vm.accountDeleted,
		DeleteError:          failure.Message(vm.deleteErr),
	}
	if vm.passwordErr != nil {
		st.PasswordErrorKind = failure.KindOf(vm.passwordErr).String()
	}
	return st
}

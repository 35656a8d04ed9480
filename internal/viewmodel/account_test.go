package viewmodel

import (
	"context"
	"errors"
	"testing"
	"time"

	"settings-core/internal/constant"
	"settings-core/internal/entity"
	"settings-core/internal/failure"
	"settings-core/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountVM(t *testing.T, opts ...service.MockAccountOption) (*AccountViewModel, *service.MockAccountService, *recordingEvents, *service.LoggingTelemetrySink) {
	t.Helper()
	mock := service.NewMockAccountService(append([]service.MockAccountOption{service.WithProfile("Alex", "alex@example.com")}, opts...)...)
	events := &recordingEvents{}
	sink := service.NewLoggingTelemetrySink(nil, true)
	vm := NewAccountViewModel(mock, WithEvents(events), WithTelemetry(sink))
	return vm, mock, events, sink
}

func TestAccountViewModel_DraftsSeededFromService(t *testing.T) {
	vm, _, _, _ := newAccountVM(t)

	st := vm.State()
	assert.Equal(t, "Alex", st.DraftName)
	assert.Equal(t, "alex@example.com", st.DraftEmail)
	assert.False(t, st.IsProfileChanged)
	assert.True(t, st.IsProfileValid)
}

func TestAccountViewModel_ProfileValidity(t *testing.T) {
	tests := []struct {
		name  string
		draft string
		email string
		want  bool
	}{
		{name: "valid", draft: "Alex", email: "a@b.co", want: true},
		{name: "no at sign", draft: "Alex", email: "no-at-sign.com", want: false},
		{name: "no dot", draft: "Alex", email: "alex@example", want: false},
		{name: "blank name", draft: "   ", email: "a@b.co", want: false},
		{name: "empty name", draft: "", email: "a@b.co", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, _, _, _ := newAccountVM(t)
			vm.SetDraftName(tt.draft)
			vm.SetDraftEmail(tt.email)
			assert.Equal(t, tt.want, vm.IsProfileValid())
		})
	}
}

func TestAccountViewModel_ProfileChanged(t *testing.T) {
	vm, _, _, _ := newAccountVM(t)
	assert.False(t, vm.IsProfileChanged())

	vm.SetDraftName("Alexandra")
	assert.True(t, vm.IsProfileChanged())

	vm.SetDraftName("Alex")
	assert.False(t, vm.IsProfileChanged())

	vm.SetDraftEmail("other@example.com")
	assert.True(t, vm.IsProfileChanged())
}

func TestAccountViewModel_SaveProfileNoopWhenUnchangedOrInvalid(t *testing.T) {
	vm, mock, _, _ := newAccountVM(t)

	assert.False(t, vm.SaveProfile(context.Background()), "unchanged")

	vm.SetDraftEmail("invalid")
	assert.False(t, vm.SaveProfile(context.Background()), "invalid")

	vm.Wait()
	assert.Equal(t, "alex@example.com", mock.Email())
}

func TestAccountViewModel_SaveProfileSuccess(t *testing.T) {
	vm, mock, events, sink := newAccountVM(t)
	vm.SetDraftName("Alexandra")
	vm.SetDraftEmail("alexandra@example.com")

	require.True(t, vm.SaveProfile(context.Background()))
	vm.Wait()

	st := vm.State()
	assert.True(t, st.ProfileSaved)
	assert.Empty(t, st.ProfileError)
	assert.False(t, st.IsSavingProfile)
	assert.False(t, st.IsProfileChanged)
	assert.Equal(t, "Alexandra", mock.DisplayName())
	assert.Equal(t, "Alexandra", vm.DisplayName())
	assert.Equal(t, []entity.HapticKind{entity.HapticSuccess}, events.Haptics())
	assert.Contains(t, sink.EventNames(), constant.EventProfileUpdated)
}

func TestAccountViewModel_SaveProfileFailureThenRetry(t *testing.T) {
	vm, mock, events, _ := newAccountVM(t)
	vm.SetDraftName("Alexandra")
	mock.FailNext(context.DeadlineExceeded)

	require.True(t, vm.SaveProfile(context.Background()))
	vm.Wait()

	st := vm.State()
	assert.False(t, st.ProfileSaved)
	assert.Equal(t, failure.Transport(nil).Error(), st.ProfileError)
	assert.Empty(t, events.Haptics())
	assert.Equal(t, "Alex", mock.DisplayName())

	// A fresh attempt overwrites the previous outcome.
	require.True(t, vm.SaveProfile(context.Background()))
	vm.Wait()

	st = vm.State()
	assert.True(t, st.ProfileSaved)
	assert.Empty(t, st.ProfileError)
}

func TestAccountViewModel_SaveProfileRejectsDoubleSubmit(t *testing.T) {
	gated := newGatedAccount()
	vm := NewAccountViewModel(gated)
	vm.SetDraftName("Alexandra")

	require.True(t, vm.SaveProfile(context.Background()))
	<-gated.entered
	assert.True(t, vm.State().IsSavingProfile)
	assert.False(t, vm.SaveProfile(context.Background()))

	close(gated.release)
	vm.Wait()

	assert.False(t, vm.State().IsSavingProfile)
	assert.Len(t, gated.entered, 0)
}

func TestAccountViewModel_ReadThroughReflectsServiceChanges(t *testing.T) {
	vm, mock, _, _ := newAccountVM(t)

	require.NoError(t, mock.UpdateProfile(context.Background(), "Sam", "sam@example.com"))

	assert.Equal(t, "Sam", vm.DisplayName())
	assert.Equal(t, "sam@example.com", vm.Email())
	// Drafts are staging fields and keep their seeded values.
	assert.Equal(t, "Alex", vm.State().DraftName)
	assert.True(t, vm.IsProfileChanged())

	vm.ResetProfileDraft()
	assert.False(t, vm.IsProfileChanged())
}

func TestAccountViewModel_PasswordValidity(t *testing.T) {
	tests := []struct {
		name                   string
		current, next, confirm string
		want                   bool
	}{
		{name: "valid", current: "password", next: "abcdefgh", confirm: "abcdefgh", want: true},
		{name: "missing current", current: "", next: "abcdefgh", confirm: "abcdefgh", want: false},
		{name: "too short", current: "password", next: "abcdefg", confirm: "abcdefg", want: false},
		{name: "mismatch", current: "password", next: "abcdefgh", confirm: "abcdefgx", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, _, _, _ := newAccountVM(t)
			vm.SetCurrentPassword(tt.current)
			vm.SetNewPassword(tt.next)
			vm.SetConfirmPassword(tt.confirm)
			assert.Equal(t, tt.want, vm.IsPasswordValid())
		})
	}
}

func TestAccountViewModel_SavePasswordSuccessClearsFields(t *testing.T) {
	vm, _, events, _ := newAccountVM(t)
	vm.SetCurrentPassword(constant.MockPassword)
	vm.SetNewPassword("Abcdefgh1")
	vm.SetConfirmPassword("Abcdefgh1")
	assert.Equal(t, StrengthGood, vm.PasswordStrength().Label)

	require.True(t, vm.SavePassword(context.Background()))
	vm.Wait()

	st := vm.State()
	assert.True(t, st.PasswordChanged)
	assert.Empty(t, st.CurrentPassword)
	assert.Empty(t, st.NewPassword)
	assert.Empty(t, st.ConfirmPassword)
	assert.Empty(t, st.PasswordError)
	assert.NoError(t, vm.PasswordFailure())
	assert.Equal(t, []entity.HapticKind{entity.HapticSuccess}, events.Haptics())
}

func TestAccountViewModel_SavePasswordIncorrectCurrent(t *testing.T) {
	vm, _, events, _ := newAccountVM(t)
	vm.SetCurrentPassword("not-the-password")
	vm.SetNewPassword("Abcdefgh1")
	vm.SetConfirmPassword("Abcdefgh1")

	require.True(t, vm.SavePassword(context.Background()))
	vm.Wait()

	st := vm.State()
	assert.False(t, st.PasswordChanged)
	assert.Equal(t, "not-the-password", st.CurrentPassword)
	assert.Equal(t, "Abcdefgh1", st.NewPassword)
	assert.Equal(t, failure.ErrIncorrectCurrentPassword.Error(), st.PasswordError)
	assert.Equal(t, failure.KindIncorrectCurrentPassword.String(), st.PasswordErrorKind)
	assert.ErrorIs(t, vm.PasswordFailure(), failure.ErrIncorrectCurrentPassword)
	assert.Empty(t, events.Haptics())
}

func TestAccountViewModel_SavePasswordTransportFailure(t *testing.T) {
	vm, mock, _, _ := newAccountVM(t)
	vm.SetCurrentPassword(constant.MockPassword)
	vm.SetNewPassword("Abcdefgh1")
	vm.SetConfirmPassword("Abcdefgh1")
	mock.FailNext(context.DeadlineExceeded)

	require.True(t, vm.SavePassword(context.Background()))
	vm.Wait()

	err := vm.PasswordFailure()
	require.Error(t, err)
	assert.Equal(t, failure.KindTransport, failure.KindOf(err))
	assert.False(t, errors.Is(err, failure.ErrIncorrectCurrentPassword))
	assert.Equal(t, constant.MockPassword, vm.State().CurrentPassword)
}

func TestAccountViewModel_SavePasswordRejectsDoubleSubmit(t *testing.T) {
	gated := newGatedAccount()
	vm := NewAccountViewModel(gated)
	vm.SetCurrentPassword(constant.MockPassword)
	vm.SetNewPassword("Abcdefgh1")
	vm.SetConfirmPassword("Abcdefgh1")

	require.True(t, vm.SavePassword(context.Background()))
	<-gated.entered
	assert.False(t, vm.SavePassword(context.Background()))

	close(gated.release)
	vm.Wait()
	assert.True(t, vm.State().PasswordChanged)
}

func TestAccountViewModel_SavePasswordNoopWhenInvalid(t *testing.T) {
	vm, _, _, _ := newAccountVM(t)
	vm.SetCurrentPassword(constant.MockPassword)
	vm.SetNewPassword("short")
	vm.SetConfirmPassword("short")

	assert.False(t, vm.SavePassword(context.Background()))
}

func TestAccountViewModel_RevokeSession(t *testing.T) {
	now := time.Now()
	vm, _, _, sink := newAccountVM(t, service.WithSessions(
		entity.ActiveSession{Id: "cur", DeviceName: "Phone", IsCurrent: true, LastActive: now},
		entity.ActiveSession{Id: "laptop", DeviceName: "Laptop", LastActive: now.Add(-time.Hour)},
		entity.ActiveSession{Id: "tablet", DeviceName: "Tablet", LastActive: now.Add(-2 * time.Hour)},
	))
	assert.Equal(t, 2, vm.OtherSessionCount())

	require.True(t, vm.RevokeSession(context.Background(), entity.ActiveSession{Id: "laptop", DeviceName: "Laptop"}))
	vm.Wait()

	assert.False(t, vm.State().IsRevokingSession)
	assert.Equal(t, 1, vm.OtherSessionCount())
	assert.Len(t, vm.ActiveSessions(), 2)
	assert.Contains(t, sink.EventNames(), constant.EventSessionRevoked)
}

func TestAccountViewModel_RevokeAllOthersRequiresConfirmation(t *testing.T) {
	vm, _, _, _ := newAccountVM(t)
	require.Greater(t, vm.OtherSessionCount(), 0)

	assert.False(t, vm.RevokeAllOtherSessions(context.Background()))
	assert.Greater(t, vm.OtherSessionCount(), 0)

	vm.SetConfirmRevokeAll(true)
	require.True(t, vm.RevokeAllOtherSessions(context.Background()))
	vm.Wait()

	st := vm.State()
	assert.False(t, st.IsRevokingAllOthers)
	assert.False(t, st.ConfirmRevokeAll)
	assert.Equal(t, 0, st.OtherSessionCount)
	require.Len(t, st.ActiveSessions, 1)
	assert.True(t, st.ActiveSessions[0].IsCurrent)
}

func TestAccountViewModel_RevokeAllOthersFailureClearsConfirmation(t *testing.T) {
	vm, mock, _, _ := newAccountVM(t)
	mock.FailNext(errors.New("server said no"))
	vm.SetConfirmRevokeAll(true)

	require.True(t, vm.RevokeAllOtherSessions(context.Background()))
	vm.Wait()

	st := vm.State()
	assert.False(t, st.ConfirmRevokeAll)
	assert.Equal(t, "server said no", st.RevokeAllError)
	assert.Empty(t, st.RevokeSessionError)
}

func TestAccountViewModel_RevokeErrorsAreIndependent(t *testing.T) {
	gated := newGatedAccount()
	vm := NewAccountViewModel(gated)
	sessions := vm.ActiveSessions()
	var other entity.ActiveSession
	for _, s := range sessions {
		if !s.IsCurrent {
			other = s
			break
		}
	}
	require.NotEmpty(t, other.Id)

	require.True(t, vm.RevokeSession(context.Background(), other))
	<-gated.entered

	gated.FailNext(errors.New("boom"))
	vm.SetConfirmRevokeAll(true)
	require.True(t, vm.RevokeAllOtherSessions(context.Background()))
	require.Eventually(t, func() bool { return !vm.State().IsRevokingAllOthers }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "boom", vm.State().RevokeAllError)

	close(gated.release)
	vm.Wait()

	st := vm.State()
	assert.Empty(t, st.RevokeSessionError)
	assert.Equal(t, "boom", st.RevokeAllError)

	vm.ClearErrors()
	assert.Empty(t, vm.State().RevokeAllError)
}

func TestAccountViewModel_DeleteAccount(t *testing.T) {
	vm, mock, _, _ := newAccountVM(t)

	assert.False(t, vm.DeleteAccount(context.Background()), "needs confirmation")
	assert.False(t, mock.IsDeleted())

	vm.SetConfirmDeleteAccount(true)
	mock.FailNext(context.DeadlineExceeded)
	require.True(t, vm.DeleteAccount(context.Background()))
	vm.Wait()

	st := vm.State()
	assert.False(t, st.IsDeletingAccount)
	assert.NotEmpty(t, st.DeleteError)
	assert.True(t, st.ConfirmDeleteAccount)
	assert.False(t, mock.IsDeleted())

	require.True(t, vm.DeleteAccount(context.Background()), "retry")
	vm.Wait()

	st = vm.State()
	assert.True(t, st.AccountDeleted)
	assert.Empty(t, st.DeleteError)
	assert.True(t, mock.IsDeleted())
	assert.False(t, vm.DeleteAccount(context.Background()), "already deleted")
}

func TestAccountViewModel_ClearErrors(t *testing.T) {
	vm, mock, _, _ := newAccountVM(t)
	vm.SetDraftName("Other")
	mock.FailNext(errors.New("boom"))
	require.True(t, vm.SaveProfile(context.Background()))
	vm.Wait()
	require.NotEmpty(t, vm.State().ProfileError)

	vm.ClearErrors()

	assert.Empty(t, vm.State().ProfileError)
}

func TestAccountViewModel_NotifiesChanges(t *testing.T) {
	vm, _, events, _ := newAccountVM(t)

	vm.SetDraftName("Changed")
	require.True(t, vm.SaveProfile(context.Background()))
	vm.Wait()

	// One for the edit, one when saving starts, one on completion.
	assert.Equal(t, []string{"account.profile", "account.profile", "account.profile"}, events.Changes())
}

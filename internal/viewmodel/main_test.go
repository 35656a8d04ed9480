package viewmodel

import (
	"context"
	"sync"
	"testing"

	"settings-core/internal/entity"
	"settings-core/internal/service"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingEvents struct {
	mu      sync.Mutex
	changes []string
	haptics []entity.HapticKind
}

func (r *recordingEvents) StateChanged(source, field string) {
	r.mu.Lock()
	r.changes = append(r.changes, source+"."+field)
	r.mu.Unlock()
}

func (r *recordingEvents) Haptic(_ string, kind entity.HapticKind) {
	r.mu.Lock()
	r.haptics = append(r.haptics, kind)
	r.mu.Unlock()
}

func (r *recordingEvents) Haptics() []entity.HapticKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.HapticKind, len(r.haptics))
	copy(out, r.haptics)
	return out
}

func (r *recordingEvents) Changes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.changes))
	copy(out, r.changes)
	return out
}

// gatedAccount blocks profile, password, single-session revoke and sign-out
// calls until release is closed.
type gatedAccount struct {
	*service.MockAccountService
	release chan struct{}
	entered chan struct{}
}

func newGatedAccount() *gatedAccount {
	return &gatedAccount{
		MockAccountService: service.NewMockAccountService(service.WithProfile("Alex", "alex@example.com")),
		release:            make(chan struct{}),
		entered:            make(chan struct{}, 8),
	}
}

func (g *gatedAccount) UpdateProfile(ctx context.Context, name, email string) error {
	g.entered <- struct{}{}
	<-g.release
	return g.MockAccountService.UpdateProfile(ctx, name, email)
}

func (g *gatedAccount) ChangePassword(ctx context.Context, current, newPassword string) error {
	g.entered <- struct{}{}
	<-g.release
	return g.MockAccountService.ChangePassword(ctx, current, newPassword)
}

func (g *gatedAccount) RevokeSession(ctx context.Context, session entity.ActiveSession) error {
	g.entered <- struct{}{}
	<-g.release
	return g.MockAccountService.RevokeSession(ctx, session)
}

func (g *gatedAccount) SignOut(ctx context.Context) {
	g.entered <- struct{}{}
	<-g.release
	g.MockAccountService.SignOut(ctx)
}

// FILE: internal/service/mock_account_service.go
package service

import (
	"context"
	"sync"
	"time"

	"settings-core/internal/constant"
	"settings-core/internal/entity"
	"settings-core/internal/failure"
	"settings-core/internal/pkg/logger"
	"settings-core/internal/repository/memory"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const mockAccountModule = "MockAccountService"

type MockAccountOption func(*MockAccountService)

// WithLatency delays every asynchronous operation to mimic a network round
// trip.
func WithLatency(d time.Duration) MockAccountOption {
	return func(s *MockAccountService) {
		s.latency = d
	}
}

func WithProfile(name, email string) MockAccountOption {
	return func(s *MockAccountService) {
		s.displayName = name
		s.email = email
	}
}

// WithSessions replaces the seeded sessions.
func WithSessions(sessions ...entity.ActiveSession) MockAccountOption {
	return func(s *MockAccountService) {
		s.sessions.Flush()
		for _, session := range sessions {
			s.sessions.Save(session)
		}
	}
}

func WithLogger(l logger.ILogger) MockAccountOption {
	return func(s *MockAccountService) {
		s.logger = l
	}
}

// MockAccountService is the in-memory AccountService used by previews, tests
// and the demo host. Its only valid current password is constant.MockPassword.
type MockAccountService struct {
	mu           sync.RWMutex
	displayName  string
	email        string
	passwordHash []byte
	deleted      bool
	signedOut    bool
	nextFailure  error

	sessions *memory.SessionRepository
	latency  time.Duration
	logger   logger.ILogger
}

func NewMockAccountService(opts ...MockAccountOption) *MockAccountService {
	// MinCost keeps the mock fast; nothing real is protected by this hash.
	hash, err := bcrypt.GenerateFromPassword([]byte(constant.MockPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	s := &MockAccountService{
		displayName:  constant.MockDisplayName,
		email:        constant.MockEmail,
		passwordHash: hash,
		sessions:     memory.NewSessionRepository(),
		logger:       logger.NewNopLogger(),
	}
	seedSessions(s.sessions, time.Now())

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func seedSessions(repo *memory.SessionRepository, now time.Time) {
	repo.Save(entity.ActiveSession{
		Id:         uuid.NewString(),
		DeviceName: "iPhone 15 Pro",
		Location:   "San Francisco, US",
		LastActive: now,
		IsCurrent:  true,
	})
	repo.Save(entity.ActiveSession{
		Id:         uuid.NewString(),
		DeviceName: "MacBook Air",
		Location:   "San Francisco, US",
		LastActive: now.Add(-2 * time.Hour),
	})
	repo.Save(entity.ActiveSession{
		Id:         uuid.NewString(),
		DeviceName: "iPad mini",
		Location:   "Portland, US",
		LastActive: now.Add(-72 * time.Hour),
	})
}

func (s *MockAccountService) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayName
}

func (s *MockAccountService) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *MockAccountService) ActiveSessions() []entity.ActiveSession {
	return s.sessions.List()
}

// FailNext makes the next fallible operation return err, classified.
func (s *MockAccountService) FailNext(err error) {
	s.mu.Lock()
	s.nextFailure = err
	s.mu.Unlock()
}

func (s *MockAccountService) IsDeleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deleted
}

func (s *MockAccountService) IsSignedOut() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedOut
}

// roundTrip simulates latency and consumes an injected failure.
func (s *MockAccountService) roundTrip(ctx context.Context) error {
	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return failure.Transport(ctx.Err())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nextFailure != nil {
		err := s.nextFailure
		s.nextFailure = nil
		return failure.Classify(err)
	}
	return nil
}

func (s *MockAccountService) UpdateProfile(ctx context.Context, name, email string) error {
	if err := s.roundTrip(ctx); err != nil {
		s.logger.Warn(mockAccountModule, "Profile update failed", map[string]interface{}{"error": err.Error()})
		return err
	}

	s.mu.Lock()
	s.displayName = name
	s.email = email
	s.mu.Unlock()

	s.logger.Info(mockAccountModule, "Profile updated", map[string]interface{}{"email": email})
	return nil
}

func (s *MockAccountService) ChangePassword(ctx context.Context, current, newPassword string) error {
	if err := s.roundTrip(ctx); err != nil {
		return err
	}

	s.mu.RLock()
	hash := s.passwordHash
	s.mu.RUnlock()

	if err := bcrypt.CompareHashAndPassword(hash, []byte(current)); err != nil {
		s.logger.Info(mockAccountModule, "Rejected password change", nil)
		return failure.ErrIncorrectCurrentPassword
	}

	s.logger.Info(mockAccountModule, "Password changed", nil)
	return nil
}

func (s *MockAccountService) RevokeSession(ctx context.Context, session entity.ActiveSession) error {
	if err := s.roundTrip(ctx); err != nil {
		return err
	}

	s.sessions.Delete(session.Id)
	s.logger.Info(mockAccountModule, "Session revoked", map[string]interface{}{"session_id": session.Id})
	return nil
}

func (s *MockAccountService) RevokeAllOtherSessions(ctx context.Context) error {
	if err := s.roundTrip(ctx); err != nil {
		return err
	}

	removed := s.sessions.DeleteWhere(func(session entity.ActiveSession) bool {
		return !session.IsCurrent
	})
	s.logger.Info(mockAccountModule, "Other sessions revoked", map[string]interface{}{"removed": removed})
	return nil
}

func (s *MockAccountService) DeleteAccount(ctx context.Context) error {
	if err := s.roundTrip(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.deleted = true
	s.mu.Unlock()
	s.sessions.Flush()

	s.logger.Info(mockAccountModule, "Account deleted", nil)
	return nil
}

func (s *MockAccountService) SignOut(ctx context.Context) {
	if err := s.roundTrip(ctx); err != nil {
		s.logger.Warn(mockAccountModule, "Sign out error ignored", map[string]interface{}{"error": err.Error()})
	}

	s.mu.Lock()
	s.signedOut = true
	s.mu.Unlock()
}

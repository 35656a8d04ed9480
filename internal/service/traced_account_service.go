package service

import (
	"context"

	"settings-core/internal/capability"
	"settings-core/internal/entity"
	"settings-core/internal/failure"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "settings-core/account"

// TracedAccountService wraps an AccountService with one span per operation.
// It also classifies whatever the wrapped service returns, so adapters that
// leak raw errors still honour the failure taxonomy.
type TracedAccountService struct {
	next   capability.AccountService
	tracer trace.Tracer
}

func NewTracedAccountService(next capability.AccountService) *TracedAccountService {
	return &TracedAccountService{next: next, tracer: otel.Tracer(tracerName)}
}

func (s *TracedAccountService) DisplayName() string { return s.next.DisplayName() }

func (s *TracedAccountService) Email() string { return s.next.Email() }

func (s *TracedAccountService) ActiveSessions() []entity.ActiveSession {
	return s.next.ActiveSessions()
}

func (s *TracedAccountService) run(ctx context.Context, op string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := s.tracer.Start(ctx, "account."+op, trace.WithAttributes(attrs...))
	defer span.End()

	if err := fn(ctx); err != nil {
		sf := failure.Classify(err)
		span.RecordError(sf)
		span.SetAttributes(attribute.String("settings.failure_kind", sf.Kind.String()))
		span.SetStatus(codes.Error, sf.Kind.String())
		return sf
	}
	return nil
}

func (s *TracedAccountService) UpdateProfile(ctx context.Context, name, email string) error {
	return s.run(ctx, "update_profile", func(ctx context.Context) error {
		return s.next.UpdateProfile(ctx, name, email)
	})
}

func (s *TracedAccountService) ChangePassword(ctx context.Context, current, newPassword string) error {
	return s.run(ctx, "change_password", func(ctx context.Context) error {
		return s.next.ChangePassword(ctx, current, newPassword)
	})
}

func (s *TracedAccountService) RevokeSession(ctx context.Context, session entity.ActiveSession) error {
	return s.run(ctx, "revoke_session", func(ctx context.Context) error {
		return s.next.RevokeSession(ctx, session)
	}, attribute.String("settings.session_id", session.Id))
}

func (s *TracedAccountService) RevokeAllOtherSessions(ctx context.Context) error {
	return s.run(ctx, "revoke_all_other_sessions", s.next.RevokeAllOtherSessions)
}

func (s *TracedAccountService) DeleteAccount(ctx context.Context) error {
	return s.run(ctx, "delete_account", s.next.DeleteAccount)
}

func (s *TracedAccountService) SignOut(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "account.sign_out")
	defer span.End()
	s.next.SignOut(ctx)
}

package service

import (
	"context"
	"errors"
	"testing"

	"settings-core/internal/constant"
	"settings-core/internal/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracedAccountService_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	mock := NewMockAccountService()
	traced := NewTracedAccountService(mock)
	ctx := context.Background()

	require.NoError(t, traced.ChangePassword(ctx, constant.MockPassword, "NewPassword1!"))
	err := traced.ChangePassword(ctx, "wrong", "NewPassword1!")
	require.ErrorIs(t, err, failure.ErrIncorrectCurrentPassword)
	traced.SignOut(ctx)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "account.change_password", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "account.sign_out", spans[2].Name())
}

func TestTracedAccountService_ClassifiesRawErrors(t *testing.T) {
	mock := NewMockAccountService()
	traced := NewTracedAccountService(mock)
	mock.FailNext(errors.New("raw"))

	err := traced.DeleteAccount(context.Background())

	var sf *failure.SettingsFailure
	require.ErrorAs(t, err, &sf)
	assert.Equal(t, failure.KindUnknown, sf.Kind)
	assert.Equal(t, mock.DisplayName(), traced.DisplayName())
}

package viewmodel

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"settings-core/internal/constant"
	"settings-core/internal/entity"
	"settings-core/internal/repository/memory"
	"settings-core/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrivacyViewModel_TogglesWriteThrough(t *testing.T) {
	store := memory.NewPreferencesStore()
	vm := NewPrivacyViewModel(store, nil, nil)

	vm.SetBiometricsEnabled(true)
	vm.SetScreenLockEnabled(false)
	vm.SetCrashReportingEnabled(false)

	assert.True(t, store.BiometricsEnabled())
	assert.False(t, store.ScreenLockEnabled())
	assert.False(t, store.CrashReportingEnabled())

	st := vm.State()
	assert.True(t, st.BiometricsEnabled)
	assert.False(t, st.ScreenLockEnabled)
	assert.True(t, st.AnalyticsEnabled)
	assert.False(t, st.CrashReportingEnabled)
}

func TestPrivacyViewModel_AnalyticsDrivesTelemetry(t *testing.T) {
	store := memory.NewPreferencesStore()
	sink := service.NewLoggingTelemetrySink(nil, true)
	vm := NewPrivacyViewModel(store, sink, nil)

	vm.SetAnalyticsEnabled(false)
	assert.False(t, store.AnalyticsEnabled())
	assert.False(t, sink.Enabled())

	vm.SetAnalyticsEnabled(true)
	assert.True(t, sink.Enabled())
}

func TestPrivacyViewModel_ExportData(t *testing.T) {
	store := memory.NewPreferencesStore()
	store.SetTheme(entity.ThemeDark)
	events := &recordingEvents{}
	sink := service.NewLoggingTelemetrySink(nil, true)
	vm := NewPrivacyViewModel(store, sink, JSONExporter(0), WithEvents(events))

	require.True(t, vm.ExportData(context.Background()))
	vm.Wait()

	st := vm.State()
	assert.False(t, st.IsExporting)
	assert.True(t, st.ExportComplete)
	assert.Empty(t, st.ExportError)
	assert.Positive(t, st.ExportSize)
	assert.Equal(t, []entity.HapticKind{entity.HapticSuccess}, events.Haptics())
	assert.Contains(t, sink.EventNames(), constant.EventDataExportCompleted)

	var snapshot entity.PreferencesSnapshot
	require.NoError(t, json.Unmarshal(vm.LastExport(), &snapshot))
	assert.Equal(t, entity.ThemeDark, snapshot.Theme)
	assert.Len(t, snapshot.NotificationSettings, 5)
}

func TestPrivacyViewModel_ExportRejectedWhileRunning(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 4)
	exporter := func(ctx context.Context, snapshot entity.PreferencesSnapshot) ([]byte, error) {
		entered <- struct{}{}
		<-release
		return []byte("{}"), nil
	}
	vm := NewPrivacyViewModel(memory.NewPreferencesStore(), nil, exporter)

	require.True(t, vm.ExportData(context.Background()))
	<-entered
	assert.True(t, vm.State().IsExporting)
	assert.False(t, vm.ExportData(context.Background()))

	close(release)
	vm.Wait()
	assert.Len(t, entered, 0)
	assert.True(t, vm.State().ExportComplete)
}

func TestPrivacyViewModel_ExportCanRunAgain(t *testing.T) {
	vm := NewPrivacyViewModel(memory.NewPreferencesStore(), nil, nil)

	require.True(t, vm.ExportData(context.Background()))
	vm.Wait()
	require.True(t, vm.State().ExportComplete)

	require.True(t, vm.ExportData(context.Background()))
	vm.Wait()
	assert.True(t, vm.State().ExportComplete)

	vm.ResetExportStatus()
	assert.False(t, vm.State().ExportComplete)
}

func TestPrivacyViewModel_ExportFailure(t *testing.T) {
	exporter := func(ctx context.Context, snapshot entity.PreferencesSnapshot) ([]byte, error) {
		return nil, errors.New("disk full")
	}
	events := &recordingEvents{}
	vm := NewPrivacyViewModel(memory.NewPreferencesStore(), nil, exporter, WithEvents(events))

	require.True(t, vm.ExportData(context.Background()))
	vm.Wait()

	st := vm.State()
	assert.False(t, st.ExportComplete)
	assert.Equal(t, "disk full", st.ExportError)
	assert.Empty(t, events.Haptics())
}

func TestPrivacyViewModel_ExportSurvivesCallerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	vm := NewPrivacyViewModel(memory.NewPreferencesStore(), nil, JSONExporter(0))

	require.True(t, vm.ExportData(ctx))
	cancel()
	vm.Wait()

	assert.True(t, vm.State().ExportComplete)
}

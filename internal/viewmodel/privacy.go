package viewmodel

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"settings-core/internal/capability"
	"settings-core/internal/constant"
	"settings-core/internal/entity"
)

const privacyModule = "PrivacyViewModel"

// DataExporter produces the user's data export from a preferences snapshot.
type DataExporter func(ctx context.Context, snapshot entity.PreferencesSnapshot) ([]byte, error)

// JSONExporter waits latency, then renders the snapshot as indented JSON.
func JSONExporter(latency time.Duration) DataExporter {
	return func(ctx context.Context, snapshot entity.PreferencesSnapshot) ([]byte, error) {
		if latency > 0 {
			timer := time.NewTimer(latency)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return json.MarshalIndent(snapshot, "", "  ")
	}
}

type PrivacyState struct {
	BiometricsEnabled     bool   `json:"biometrics_enabled"`
	ScreenLockEnabled     bool   `json:"screen_lock_enabled"`
	AnalyticsEnabled      bool   `json:"analytics_enabled"`
	CrashReportingEnabled bool   `json:"crash_reporting_enabled"`
	IsExporting           bool   `json:"is_exporting"`
	ExportComplete        bool   `json:"export_complete"`
	ExportError           string `json:"export_error,omitempty"`
	ExportSize            int    `json:"export_size"`
}

// PrivacyViewModel binds the four privacy toggles to the store. The analytics
// toggle also drives the telemetry sink.
type PrivacyViewModel struct {
	dispatcher

	store     capability.PreferencesStore
	telemetry capability.TelemetrySink
	exporter  DataExporter
	opts      options

	mu             sync.Mutex
	isExporting    bool
	exportComplete bool
	exportErr      error
	lastExport     []byte
}

func NewPrivacyViewModel(store capability.PreferencesStore, telemetry capability.TelemetrySink, exporter DataExporter, opts ...Option) *PrivacyViewModel {
	if exporter == nil {
		exporter = JSONExporter(0)
	}
	o := buildOptions(opts)
	if telemetry == nil {
		telemetry = o.telemetry
	}
	return &PrivacyViewModel{
		store:     store,
		telemetry: telemetry,
		exporter:  exporter,
		opts:      o,
	}
}

func (vm *PrivacyViewModel) changed(field string) {
	vm.opts.events.StateChanged(SourcePrivacy, field)
}

func (vm *PrivacyViewModel) BiometricsEnabled() bool { return vm.store.BiometricsEnabled() }

func (vm *PrivacyViewModel) SetBiometricsEnabled(enabled bool) {
	vm.store.SetBiometricsEnabled(enabled)
	vm.changed("biometrics")
}

func (vm *PrivacyViewModel) ScreenLockEnabled() bool { return vm.store.ScreenLockEnabled() }

func (vm *PrivacyViewModel) SetScreenLockEnabled(enabled bool) {
	vm.store.SetScreenLockEnabled(enabled)
	vm.changed("screen_lock")
}

func (vm *PrivacyViewModel) AnalyticsEnabled() bool { return vm.store.AnalyticsEnabled() }

// SetAnalyticsEnabled keeps the telemetry sink in lockstep with the toggle.
func (vm *PrivacyViewModel) SetAnalyticsEnabled(enabled bool) {
	vm.store.SetAnalyticsEnabled(enabled)
	vm.telemetry.SetEnabled(enabled)
	vm.changed("analytics")
}

func (vm *PrivacyViewModel) CrashReportingEnabled() bool { return vm.store.CrashReportingEnabled() }

func (vm *PrivacyViewModel) SetCrashReportingEnabled(enabled bool) {
	vm.store.SetCrashReportingEnabled(enabled)
	vm.changed("crash_reporting")
}

// ExportData starts an export unless one is already running. A finished
// export does not block a new one; starting again clears the complete flag.
func (vm *PrivacyViewModel) ExportData(ctx context.Context) bool {
	vm.mu.Lock()
	if vm.isExporting {
		vm.mu.Unlock()
		return false
	}
	vm.isExporting = true
	vm.exportComplete = false
	vm.exportErr = nil
	vm.mu.Unlock()
	vm.changed("export")

	snapshot := snapshotOf(vm.store)

	vm.dispatch(ctx, func(ctx context.Context) {
		data, err := vm.exporter(ctx, snapshot)

		vm.mu.Lock()
		vm.isExporting = false
		if err != nil {
			vm.exportErr = classify(err)
		} else {
			vm.exportComplete = true
			vm.lastExport = data
		}
		vm.mu.Unlock()

		if err != nil {
			vm.opts.logger.Warn(privacyModule, "Data export failed", map[string]interface{}{"error": err.Error()})
		} else {
			vm.opts.events.Haptic(SourcePrivacy, entity.HapticSuccess)
			vm.telemetry.Track(constant.EventDataExportCompleted, nil)
			vm.opts.logger.Info(privacyModule, "Data export completed", map[string]interface{}{"bytes": len(data)})
		}
		vm.changed("export")
	})
	return true
}

// ResetExportStatus clears the complete flag and any error after the UI has
// shown them.
func (vm *PrivacyViewModel) ResetExportStatus() {
	vm.mu.Lock()
	vm.exportComplete = false
	vm.exportErr = nil
	vm.mu.Unlock()
	vm.changed("export")
}

// LastExport returns the most recent successful export.
func (vm *PrivacyViewModel) LastExport() []byte {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]byte, len(vm.lastExport))
	copy(out, vm.lastExport)
	return out
}

func (vm *PrivacyViewModel) State() PrivacyState {
	st := PrivacyState{
		BiometricsEnabled:     vm.store.BiometricsEnabled(),
		ScreenLockEnabled:     vm.store.ScreenLockEnabled(),
		AnalyticsEnabled:      vm.store.AnalyticsEnabled(),
		CrashReportingEnabled: vm.store.CrashReportingEnabled(),
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	st.IsExporting = vm.isExporting
	st.ExportComplete = vm.exportComplete
	st.ExportSize = len(vm.lastExport)
	if vm.exportErr != nil {
		st.ExportError = vm.exportErr.Error()
	}
	return st
}

func snapshotOf(store capability.PreferencesStore) entity.PreferencesSnapshot {
	return entity.PreferencesSnapshot{
		Theme:                 store.Theme(),
		BiometricsEnabled:     store.BiometricsEnabled(),
		ScreenLockEnabled:     store.ScreenLockEnabled(),
		AnalyticsEnabled:      store.AnalyticsEnabled(),
		CrashReportingEnabled: store.CrashReportingEnabled(),
		NotificationSettings:  store.NotificationSettings(),
		SavedAt:               time.Now(),
	}
}

package main

import (
	"context"
	"errors"
	"fmt"

	"settings-core/internal/repository/contract"
	"settings-core/internal/repository/implementation"
	"settings-core/internal/repository/memory"
	"settings-core/internal/viewmodel"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the data export for a profile's stored preferences",
	Long: `Runs a privacy data export against the preferences stored for --profile.
Without --redis-url the export reflects default preferences.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func loadStore(ctx context.Context) (*memory.PreferencesStore, error) {
	if redisURL == "" {
		return memory.NewPreferencesStore(), nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	snapshot, err := implementation.NewRedisPreferencesSnapshotRepository(rdb, 0).Load(ctx, profile)
	if errors.Is(err, contract.ErrSnapshotNotFound) {
		return memory.NewPreferencesStore(), nil
	}
	if err != nil {
		return nil, err
	}
	return memory.NewPreferencesStoreFromSnapshot(snapshot), nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	store, err := loadStore(ctx)
	if err != nil {
		return err
	}

	vm := viewmodel.NewPrivacyViewModel(store, nil, viewmodel.JSONExporter(0))
	vm.ExportData(ctx)
	vm.Wait()

	st := vm.State()
	if !st.ExportComplete {
		return fmt.Errorf("export failed: %s", st.ExportError)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(vm.LastExport()))
	color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "exported %d bytes for profile %q\n", st.ExportSize, profile)
	return nil
}

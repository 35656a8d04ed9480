package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	natsURL  string
	redisURL string
	profile  string
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "settingsctl",
	Short:         "Inspect the settings catalog, password rules and telemetry stream",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&natsURL, "nats-url", envOr("NATS_URL", "nats://localhost:4222"), "NATS server URL")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis-url", envOr("REDIS_URL", ""), "Redis URL for stored preference snapshots")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", envOr("SETTINGS_PROFILE_KEY", "default"), "Preference profile key")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Operation timeout")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(strengthCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(telemetryCmd)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

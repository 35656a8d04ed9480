package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"settings-core/pkg/events"
	pktNats "settings-core/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	tailSubject string
	tailDurable string
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Telemetry stream tools",
}

var telemetryTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print telemetry events as they are published",
	Args:  cobra.NoArgs,
	RunE:  runTelemetryTail,
}

func init() {
	telemetryTailCmd.Flags().StringVar(&tailSubject, "subject", pktNats.SubjectPrefix+">", "Subject filter")
	telemetryTailCmd.Flags().StringVar(&tailDurable, "durable", "", "Durable consumer name (empty for an ephemeral tail)")
	telemetryCmd.AddCommand(telemetryTailCmd)
}

func formatEvent(evt events.TelemetryEvent) string {
	keys := make([]string, 0, len(evt.Properties))
	for k := range evt.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(evt.OccurredAt.Format("15:04:05.000"))
	b.WriteString(" ")
	b.WriteString(evt.Name)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, evt.Properties[k])
	}
	return b.String()
}

func runTelemetryTail(cmd *cobra.Command, args []string) error {
	sub, err := pktNats.NewSubscriber(natsURL)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	color.New(color.FgCyan).Fprintf(cmd.ErrOrStderr(), "tailing %s on %s (Ctrl+C to stop)\n", tailSubject, natsURL)

	out := cmd.OutOrStdout()
	err = sub.Subscribe(ctx, tailSubject, tailDurable, func(_ context.Context, evt events.TelemetryEvent) error {
		fmt.Fprintln(out, formatEvent(evt))
		return nil
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

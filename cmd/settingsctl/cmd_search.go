package main

import (
	"fmt"
	"strings"

	"settings-core/internal/constant"
	"settings-core/internal/viewmodel"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the settings catalog the way the settings screen does",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	query := strings.Join(args, " ")

	results := viewmodel.NewSearchIndex(constant.SearchCatalog()).Search(query)
	if len(results) == 0 {
		color.New(color.FgYellow).Fprintf(out, "No settings match %q\n", query)
		return nil
	}

	section := color.New(color.FgCyan, color.Bold)
	for _, entry := range results {
		section.Fprintf(out, "%-20s", entry.Section)
		fmt.Fprintf(out, " %s -> %s\n", entry.Title, entry.Destination)
	}
	return nil
}

package main

import (
	"fmt"
	"settings-core/internal/viewmodel"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var strengthCmd = &cobra.Command{
	Use:   "strength <password>",
	Short: "Score a candidate password",
	Args:  cobra.ExactArgs(1),
	RunE:  runStrength,
}

func labelColor(label string) *color.Color {
	switch label {
	case viewmodel.StrengthWeak:
		return color.New(color.FgRed)
	case viewmodel.StrengthFair:
		return color.New(color.FgYellow)
	case viewmodel.StrengthGood:
		return color.New(color.FgCyan)
	case viewmodel.StrengthStrong:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Faint)
	}
}

func runStrength(cmd *cobra.Command, args []string) error {
	s := viewmodel.EvaluatePasswordStrength(args[0])

	label := s.Label
	if label == viewmodel.StrengthNone {
		label = "(none)"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "score: %.2f  label: ", s.Score)
	labelColor(s.Label).Fprintln(out, label)
	return nil
}

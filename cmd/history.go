package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ponyget/internal/history"
	"ponyget/internal/httputil"
)

var flagClear string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List downloaded tracks",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().StringVar(&flagClear, "clear", "", "Remove all entries for a track ID")
}

func historyRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if flagClear != "" {
		if err := httputil.ValidateNumericID(flagClear); err != nil {
			return fmt.Errorf("invalid track ID: %w", err)
		}
		n, err := history.Remove(flagClear)
		if err != nil {
			return fmt.Errorf("updating history: %w", err)
		}
		fmt.Fprintf(out, "Removed %d entries.\n", n)
		return nil
	}

	entries, err := history.Load()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No history entries found.")
		return nil
	}

	for _, item := range history.FormatForDisplay(entries) {
		fmt.Fprintln(out, item)
	}
	return nil
}

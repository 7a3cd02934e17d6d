package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ponyget/internal/render"
)

var formatsCmd = &cobra.Command{
	Use:   "formats <url>",
	Short: "List available formats, best first",
	Args:  cobra.ExactArgs(1),
	RunE:  formatsRun,
}

func formatsRun(cmd *cobra.Command, args []string) error {
	tracks, err := extractAll(cmd, args)
	if err != nil {
		return err
	}
	t := tracks[0]

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), tracks)
	}

	if len(t.Formats) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No formats available.")
		return nil
	}
	render.Formats(cmd.OutOrStdout(), t.Formats)
	return nil
}

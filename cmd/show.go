package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ponyget/internal/media"
	"ponyget/internal/render"
)

// showRun is the default command: ponyget <url>...
func showRun(cmd *cobra.Command, args []string) error {
	tracks, err := extractAll(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, tracks)
	}

	for i, t := range tracks {
		if i > 0 {
			fmt.Fprintln(out)
		}
		render.Track(out, t)
	}
	return nil
}

// extractAll resolves each URL in order and stops at the first failure.
func extractAll(cmd *cobra.Command, urls []string) ([]*media.Track, error) {
	reg := newRegistry()

	tracks := make([]*media.Track, 0, len(urls))
	for _, u := range urls {
		debugf("extracting: %s", u)
		t, err := reg.Extract(cmd.Context(), u)
		if err != nil {
			return nil, err
		}
		debugf("track %s: %d formats, %d thumbnails", t.ID, len(t.Formats), len(t.Thumbnails))
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// writeJSON prints a single track as an object and several as an array.
func writeJSON(w io.Writer, tracks []*media.Track) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(tracks) == 1 {
		return enc.Encode(tracks[0])
	}
	return enc.Encode(tracks)
}

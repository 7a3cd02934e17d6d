package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ponyget/internal/download"
	"ponyget/internal/history"
	"ponyget/internal/httputil"
	"ponyget/internal/media"
)

// downloadTimeout bounds a single audio file transfer.
const downloadTimeout = 10 * time.Minute

var flagOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <url>...",
	Short: "Download the preferred format of each track",
	Args:  cobra.MinimumNArgs(1),
	RunE:  downloadRun,
}

func init() {
	downloadCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output directory (default: download_dir from config)")
}

func downloadRun(cmd *cobra.Command, args []string) error {
	dir := flagOutput
	if dir == "" {
		var err error
		dir, err = cfg.ExpandDownloadDir()
		if err != nil {
			return fmt.Errorf("resolving download dir: %w", err)
		}
	}

	tracks, err := extractAll(cmd, args)
	if err != nil {
		return err
	}

	client := httputil.NewClient(downloadTimeout)
	for _, t := range tracks {
		format := media.BestFormat(t.Formats, cfg.Format)
		if format == nil {
			return fmt.Errorf("track %s has no downloadable formats", t.ID)
		}
		debugf("track %s: using format %s (%s)", t.ID, media.String(format.Name), media.String(format.URL))

		fmt.Fprintf(os.Stderr, "Downloading: %s\n", download.Filename(t, format))
		path, size, err := download.Download(cmd.Context(), client, t, format, dir)
		if err != nil {
			return fmt.Errorf("downloading track %s: %w", t.ID, err)
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", path)

		if cfg.History {
			entry := media.HistoryEntry{
				ID:       t.ID,
				Title:    media.String(t.Title),
				Uploader: media.String(t.Uploader),
				Ext:      media.String(format.Ext),
				Path:     path,
				Size:     size,
			}
			recordDownload(os.Stderr, entry)
		}
	}

	return nil
}

// recordDownload appends entry to the download log. The file is already on
// disk, so a failure is reported on w and does not fail the command.
func recordDownload(w io.Writer, entry media.HistoryEntry) {
	if err := history.Save(entry); err != nil {
		fmt.Fprintf(w, "Warning: download log not updated: %v\n", err)
	}
}

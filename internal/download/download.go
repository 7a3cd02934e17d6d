// Package download saves a track format to disk over HTTPS.
// Output paths are validated against directory traversal and
// files appear only once fully written.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"ponyget/internal/httputil"
	"ponyget/internal/media"
)

// Filename builds "<title> [<id>].<ext>" for a track format.
// The title falls back to the display ID, then the track ID.
func Filename(track *media.Track, format *media.Format) string {
	title := media.String(track.Title)
	if title == "" {
		title = media.String(track.DisplayID)
	}
	if title == "" {
		title = track.ID
	}

	ext := strings.ToLower(media.String(format.Ext))
	if ext == "" && format.URL != nil {
		ext = strings.TrimPrefix(path.Ext(*format.URL), ".")
	}
	if ext == "" {
		ext = "bin"
	}

	return fmt.Sprintf("%s [%s].%s", title, track.ID, ext)
}

// Download fetches format into outputDir and returns the file path and size.
func Download(ctx context.Context, client *http.Client, track *media.Track, format *media.Format, outputDir string) (string, int64, error) {
	if format == nil || format.URL == nil {
		return "", 0, fmt.Errorf("no downloadable format for track %s", track.ID)
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", 0, fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", 0, fmt.Errorf("creating output directory: %w", err)
	}

	outputPath, err := httputil.SafeDownloadPath(absDir, Filename(track, format))
	if err != nil {
		return "", 0, fmt.Errorf("invalid output path: %w", err)
	}

	resp, err := httputil.Get(ctx, client, *format.URL)
	if err != nil {
		return "", 0, fmt.Errorf("fetching %s: %w", media.String(format.Name), err)
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(absDir, ".ponyget-*.part")
	if err != nil {
		return "", 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	size, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", 0, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", 0, fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return "", 0, fmt.Errorf("renaming download: %w", err)
	}

	return outputPath, size, nil
}

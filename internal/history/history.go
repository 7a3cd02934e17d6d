// Package history keeps a TSV log of completed downloads.
// Uses atomic writes (temp+rename) to prevent data corruption.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ponyget/internal/config"
	"ponyget/internal/media"
)

// TSV columns: id, title, uploader, ext, path, size
const numColumns = 6

// Load reads the history file and returns all entries.
func Load() ([]media.HistoryEntry, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	var entries []media.HistoryEntry
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			continue // Skip malformed lines
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return entries, nil
}

// Save writes or updates an entry in the history file.
// An entry with the same track ID and extension is replaced.
func Save(entry media.HistoryEntry) error {
	entries, err := Load()
	if err != nil {
		return err
	}

	found := false
	for i, e := range entries {
		if e.ID == entry.ID && e.Ext == entry.Ext {
			entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, entry)
	}

	return writeAll(entries)
}

// Remove deletes every entry for a track ID and reports how many were removed.
func Remove(id string) (int, error) {
	entries, err := Load()
	if err != nil {
		return 0, err
	}

	var filtered []media.HistoryEntry
	for _, e := range entries {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}

	removed := len(entries) - len(filtered)
	if removed == 0 {
		return 0, nil
	}
	return removed, writeAll(filtered)
}

// writeAll replaces the history file atomically.
func writeAll(entries []media.HistoryEntry) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "history-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writer := bufio.NewWriter(tmpFile)
	for _, e := range entries {
		if _, err := writer.WriteString(formatLine(e) + "\n"); err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("writing history: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing history: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming history file: %w", err)
	}

	return nil
}

// FormatForDisplay creates one display line per entry.
func FormatForDisplay(entries []media.HistoryEntry) []string {
	var items []string
	for _, e := range entries {
		display := fmt.Sprintf("%s  %s", e.ID, e.Title)
		if e.Uploader != "" {
			display += " - " + e.Uploader
		}
		if e.Ext != "" {
			display += fmt.Sprintf(" [%s]", e.Ext)
		}
		display += "  " + e.Path
		items = append(items, display)
	}
	return items
}

// parseLine parses a TSV line into a HistoryEntry.
func parseLine(line string) (media.HistoryEntry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numColumns {
		return media.HistoryEntry{}, fmt.Errorf("expected %d columns, got %d", numColumns, len(fields))
	}

	size, _ := strconv.ParseInt(fields[5], 10, 64)

	return media.HistoryEntry{
		ID:       fields[0],
		Title:    fields[1],
		Uploader: fields[2],
		Ext:      fields[3],
		Path:     fields[4],
		Size:     size,
	}, nil
}

// tsvField keeps a value on one line and inside its column.
var tsvField = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// formatLine converts a HistoryEntry to a TSV line.
func formatLine(e media.HistoryEntry) string {
	return strings.Join([]string{
		tsvField.Replace(e.ID),
		tsvField.Replace(e.Title),
		tsvField.Replace(e.Uploader),
		tsvField.Replace(e.Ext),
		tsvField.Replace(e.Path),
		strconv.FormatInt(e.Size, 10),
	}, "\t")
}

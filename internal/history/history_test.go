package history

import (
	"testing"

	"ponyget/internal/media"
)

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	entry := media.HistoryEntry{
		ID:       "43462",
		Title:    "Summer Wind (Fallout: Equestria) - SkyBolt",
		Uploader: "SkyBoltsMusic",
		Ext:      "flac",
		Path:     "/tmp/music/summer.flac",
		Size:     31415926,
	}

	if err := Save(entry); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0] != entry {
		t.Errorf("got %+v, want %+v", entries[0], entry)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	entries, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestSaveUpdatesExisting(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	entry := media.HistoryEntry{ID: "1", Title: "Test", Ext: "mp3", Path: "/a.mp3", Size: 100}
	Save(entry)

	entry.Size = 500
	Save(entry)

	// A different format of the same track is a separate entry.
	Save(media.HistoryEntry{ID: "1", Title: "Test", Ext: "flac", Path: "/a.flac"})

	entries, _ := Load()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Size != 500 {
		t.Errorf("size = %d, want 500", entries[0].Size)
	}
}

func TestRemove(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	Save(media.HistoryEntry{ID: "a", Title: "A", Ext: "mp3"})
	Save(media.HistoryEntry{ID: "a", Title: "A", Ext: "flac"})
	Save(media.HistoryEntry{ID: "b", Title: "B", Ext: "mp3"})

	n, err := Remove("a")
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if n != 2 {
		t.Errorf("removed %d entries, want 2", n)
	}

	entries, _ := Load()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after remove, got %d", len(entries))
	}
	if entries[0].ID != "b" {
		t.Errorf("remaining entry ID = %q, want b", entries[0].ID)
	}

	if n, _ := Remove("zzz"); n != 0 {
		t.Errorf("removing unknown ID removed %d entries", n)
	}
}

func TestFormatForDisplay(t *testing.T) {
	entries := []media.HistoryEntry{
		{ID: "1", Title: "Song", Uploader: "Artist", Ext: "flac", Path: "/m/song.flac"},
		{ID: "2", Title: "Bare", Path: "/m/bare"},
	}

	items := FormatForDisplay(entries)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0] != "1  Song - Artist [flac]  /m/song.flac" {
		t.Errorf("items[0] = %q", items[0])
	}
	if items[1] != "2  Bare  /m/bare" {
		t.Errorf("items[1] = %q", items[1])
	}
}

func TestFormatLine(t *testing.T) {
	entry := media.HistoryEntry{
		ID:       "43462",
		Title:    "Tab\there",
		Uploader: "U",
		Ext:      "mp3",
		Path:     "/tmp/x.mp3",
		Size:     200,
	}

	line := formatLine(entry)
	expected := "43462\tTab here\tU\tmp3\t/tmp/x.mp3\t200"
	if line != expected {
		t.Errorf("formatLine = %q, want %q", line, expected)
	}

	parsed, err := parseLine(line)
	if err != nil {
		t.Fatalf("parseLine error: %v", err)
	}
	if parsed.ID != entry.ID || parsed.Size != entry.Size || parsed.Path != entry.Path {
		t.Errorf("round-trip failed: got %+v", parsed)
	}

	if _, err := parseLine("only\ttwo"); err == nil {
		t.Error("parseLine should reject short lines")
	}
}

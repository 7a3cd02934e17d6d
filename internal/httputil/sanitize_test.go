package httputil

import (
	"path/filepath"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid HTTPS", "https://pony.fm/api/web/tracks/1", false},
		{"HTTP rejected", "http://pony.fm/api/web/tracks/1", true},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"data scheme rejected", "data:text/html,<h1>Hi</h1>", true},
		{"FTP rejected", "ftp://example.com/file", true},
		{"empty string", "", true},
		{"no host", "https://", true},
		{"valid with port", "https://127.0.0.1:8443/path", false},
		{"valid with query", "https://example.com/path?q=test&a=b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNumericID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "43462", false},
		{"zero", "0", false},
		{"empty", "", true},
		{"letters", "abc", true},
		{"mixed", "123abc", true},
		{"negative", "-1", true},
		{"decimal", "1.5", true},
		{"path traversal", "1/../2", true},
		{"too long", "123456789012345678901234567890123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNumericID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNumericID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain title", "Summer Wind [43462].flac", "Summer Wind [43462].flac"},
		{"slash in title kept as underscore", "AC/DC Tribute: Back in Black [42].flac", "AC_DC Tribute_ Back in Black [42].flac"},
		{"backslash in title", `Left\Right [7].mp3`, "Left_Right [7].mp3"},
		{"fraction in title", "1/2 Past Midnight [9].ogg", "1_2 Past Midnight [9].ogg"},
		{"leading traversal stays in one component", "../../etc/passwd [1].mp3", ".._.._etc_passwd [1].mp3"},
		{"colon in title", "Summer Wind (Fallout: Equestria).flac", "Summer Wind (Fallout_ Equestria).flac"},
		{"reserved characters", `What? <Really> "Yes" | No*.mp3`, "What_ _Really_ _Yes_ _ No_.mp3"},
		{"control characters dropped", "Line\nBreak\x00 [3].mp3", "LineBreak [3].mp3"},
		{"surrounding whitespace", "  Spaced Out [4].mp3  ", "Spaced Out [4].mp3"},
		{"non-ASCII title", "Ponyë Fm ☆ [5].flac", "Ponyë Fm ☆ [5].flac"},
		{"ellipsis inside title", "Wait... What [6].mp3", "Wait... What [6].mp3"},
		{"empty", "", "untitled"},
		{"dot", ".", "untitled"},
		{"dot dot", "..", "untitled"},
		{"only control characters", "\x01\x02", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeDownloadPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"plain title", "Summer Wind [43462].flac", "Summer Wind [43462].flac"},
		{"slash in title", "AC/DC Tribute: Back in Black [42].flac", "AC_DC Tribute_ Back in Black [42].flac"},
		{"traversal attempt", "../../etc/passwd", ".._.._etc_passwd"},
		{"absolute path", "/etc/passwd", "_etc_passwd"},
		{"shell metacharacters", "$(whoami).mp3", "$(whoami).mp3"},
		{"dot dot", "..", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := SafeDownloadPath(dir, tt.filename)
			if err != nil {
				t.Fatalf("SafeDownloadPath(%q) error: %v", tt.filename, err)
			}
			if want := filepath.Join(dir, tt.want); path != want {
				t.Errorf("SafeDownloadPath(%q) = %q, want %q", tt.filename, path, want)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Format != "best" {
		t.Errorf("default format = %q, want best", cfg.Format)
	}
	if cfg.APIBase != "https://pony.fm/api/web/tracks/" {
		t.Errorf("default api_base = %q", cfg.APIBase)
	}
	if !cfg.History {
		t.Error("default history should be true")
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", cfg.Timeout())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid format", func(c *Config) { c.Format = "wav" }, true},
		{"valid flac", func(c *Config) { c.Format = "flac" }, false},
		{"valid upper-case mp3", func(c *Config) { c.Format = "MP3" }, false},
		{"http api base", func(c *Config) { c.APIBase = "http://pony.fm/api/web/tracks/" }, true},
		{"relative api base", func(c *Config) { c.APIBase = "/api/web/tracks/" }, true},
		{"api base without slash", func(c *Config) { c.APIBase = "https://pony.fm/api/web/tracks" }, true},
		{"mirror api base", func(c *Config) { c.APIBase = "https://mirror.example/tracks/" }, false},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, true},
		{"huge timeout", func(c *Config) { c.TimeoutSeconds = 3600 }, true},
		{"empty download dir", func(c *Config) { c.DownloadDir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	appDir := filepath.Join(tmpDir, "ponyget")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `
format = "flac"
download_dir = "/tmp/ponies"
history = false
timeout_seconds = 10
`
	if err := os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Format != "flac" {
		t.Errorf("format = %q, want flac", cfg.Format)
	}
	if cfg.DownloadDir != "/tmp/ponies" {
		t.Errorf("download_dir = %q, want /tmp/ponies", cfg.DownloadDir)
	}
	if cfg.History {
		t.Error("history should be false")
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.Timeout())
	}
	if cfg.APIBase != Default().APIBase {
		t.Errorf("api_base should keep default, got %q", cfg.APIBase)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	appDir := filepath.Join(tmpDir, "ponyget")
	os.MkdirAll(appDir, 0755)
	os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(`format = "wav"`), 0644)

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject an unsupported format")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Format != "best" {
		t.Errorf("missing file should return defaults, got format = %q", cfg.Format)
	}
}

func TestExpandDownloadDir(t *testing.T) {
	cfg := Default()
	cfg.DownloadDir = "/tmp/test-downloads"

	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		t.Fatalf("ExpandDownloadDir() error: %v", err)
	}
	if dir != "/tmp/test-downloads" {
		t.Errorf("got %q, want /tmp/test-downloads", dir)
	}
}

func TestHistoryPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	path, err := HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath() error: %v", err)
	}
	if want := filepath.Join(tmpDir, "ponyget", "history.tsv"); path != want {
		t.Errorf("got %q, want %q", path, want)
	}
}

// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	APIBase        string `toml:"api_base"`
	Format         string `toml:"format"`
	DownloadDir    string `toml:"download_dir"`
	History        bool   `toml:"history"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Debug          bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		APIBase:        "https://pony.fm/api/web/tracks/",
		Format:         "best",
		DownloadDir:    "~/Music/ponyget",
		History:        true,
		TimeoutSeconds: 30,
		Debug:          false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ponyget"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ponyget"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"best": true, "flac": true, "mp3": true, "m4a": true, "ogg": true,
	}
	if !validFormats[strings.ToLower(c.Format)] {
		return fmt.Errorf("unsupported format %q (valid: best, flac, mp3, m4a, ogg)", c.Format)
	}

	u, err := url.Parse(c.APIBase)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("api_base must be an absolute HTTPS URL, got %q", c.APIBase)
	}
	if !strings.HasSuffix(c.APIBase, "/") {
		return fmt.Errorf("api_base must end with a slash, got %q", c.APIBase)
	}

	if c.TimeoutSeconds < 1 || c.TimeoutSeconds > 600 {
		return fmt.Errorf("timeout_seconds must be between 1 and 600, got %d", c.TimeoutSeconds)
	}

	if c.DownloadDir == "" {
		return fmt.Errorf("download_dir cannot be empty")
	}

	return nil
}

// Timeout returns the HTTP client timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// HistoryPath returns the path to the download log.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "ponyget", "history.tsv"), nil
}

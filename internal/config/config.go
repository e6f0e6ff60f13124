// Package config handles persistent user configuration for metasync.
//
// Configuration is stored as JSON at ~/.config/metasync/config.json (or
// the platform-equivalent path returned by os.UserConfigDir).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"opsnz/metasync/internal/metaname"
)

const (
	appDir   = "metasync"
	fileName = "config.json"
)

// Defaults applied when the config file leaves a value unset.
const (
	DefaultRetries      = 3
	DefaultRetryBackoff = 1.0
	EndpointProd        = "prod"
	EndpointTest        = "test"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations.
type Config struct {
	// Endpoint selects the Metaname API: "prod", "test", or a full URL.
	Endpoint string `json:"endpoint,omitempty"`

	// Retries is the total attempt count for provider calls.
	Retries int `json:"retries,omitempty"`

	// RetryBackoffSeconds is the base delay between retry attempts.
	RetryBackoffSeconds float64 `json:"retry_backoff_seconds,omitempty"`
}

// EndpointURL resolves the configured endpoint to a concrete API URL.
func (c *Config) EndpointURL() (string, error) {
	switch endpoint := strings.TrimSpace(c.Endpoint); endpoint {
	case "", EndpointProd:
		return metaname.ProdAPIURL, nil
	case EndpointTest:
		return metaname.TestAPIURL, nil
	default:
		if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
			return endpoint, nil
		}
		return "", fmt.Errorf("config: endpoint must be %q, %q, or a URL, got %q", EndpointProd, EndpointTest, endpoint)
	}
}

// RetriesOrDefault returns the configured retry count, defaulting and
// clamping to at least 1.
func (c *Config) RetriesOrDefault() int {
	if c.Retries <= 0 {
		return DefaultRetries
	}
	return c.Retries
}

// RetryBackoff returns the configured backoff as a duration.
func (c *Config) RetryBackoff() time.Duration {
	seconds := c.RetryBackoffSeconds
	if seconds <= 0 {
		seconds = DefaultRetryBackoff
	}
	return time.Duration(seconds * float64(time.Second))
}

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
// Otherwise it uses os.UserConfigDir which resolves to
// ~/Library/Application Support on macOS, ~/.config on Linux, and
// %AppData% on Windows.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file from disk and returns the parsed Config.
// If the file does not exist, a zero-value Config is returned (not an error).
func Load() (*Config, error) {
	return loadFrom("")
}

// loadFrom reads the config from the given path. If path is empty, the
// default Path() is used. Exported only for testing via LoadFrom.
func loadFrom(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	return c.saveTo("")
}

// saveTo writes the config to the given path. If path is empty, the
// default Path() is used.
func (c *Config) saveTo(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads the config from the given path. Intended for testing.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path)
}

// SaveTo writes the config to the given path. Intended for testing.
func (c *Config) SaveTo(path string) error {
	return c.saveTo(path)
}

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "endpoint").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set validates and applies a value for this key to the given Config
	// (in memory only; the caller is responsible for calling Save).
	Set func(cfg *Config, value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "endpoint",
		Description: `Metaname API to target: "prod", "test", or a full URL`,
		Get:         func(cfg *Config) string { return cfg.Endpoint },
		Set: func(cfg *Config, v string) error {
			probe := Config{Endpoint: v}
			if _, err := probe.EndpointURL(); err != nil {
				return err
			}
			cfg.Endpoint = v
			return nil
		},
	},
	{
		Name:        "retries",
		Description: "Total attempts per API call (minimum 1)",
		Get: func(cfg *Config) string {
			if cfg.Retries == 0 {
				return ""
			}
			return strconv.Itoa(cfg.Retries)
		},
		Set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("retries must be an integer, got %q", v)
			}
			if n < 1 {
				return fmt.Errorf("retries must be at least 1, got %d", n)
			}
			cfg.Retries = n
			return nil
		},
	},
	{
		Name:        "retry-backoff",
		Description: "Base delay in seconds between retry attempts",
		Get: func(cfg *Config) string {
			if cfg.RetryBackoffSeconds == 0 {
				return ""
			}
			return strconv.FormatFloat(cfg.RetryBackoffSeconds, 'f', -1, 64)
		},
		Set: func(cfg *Config, v string) error {
			seconds, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("retry-backoff must be a number of seconds, got %q", v)
			}
			if seconds < 0 {
				return fmt.Errorf("retry-backoff must not be negative, got %v", seconds)
			}
			cfg.RetryBackoffSeconds = seconds
			return nil
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"opsnz/metasync/internal/metaname"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Endpoint != "" {
		t.Errorf("expected empty Endpoint, got %q", cfg.Endpoint)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metasync", "config.json")

	want := &Config{Endpoint: "test", Retries: 5, RetryBackoffSeconds: 0.5}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	path := filepath.Join(dir, "config.json")

	cfg := &Config{Endpoint: "test"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Verify the file exists.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSave_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	first := &Config{Endpoint: "prod"}
	if err := first.SaveTo(path); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := &Config{Endpoint: "test"}
	if err := second.SaveTo(path); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.Endpoint != "test" {
		t.Errorf("expected Endpoint %q, got %q", "test", got.Endpoint)
	}
}

func TestEndpointURL(t *testing.T) {
	cases := []struct {
		endpoint string
		want     string
		wantErr  bool
	}{
		{"", metaname.ProdAPIURL, false},
		{"prod", metaname.ProdAPIURL, false},
		{"test", metaname.TestAPIURL, false},
		{"https://example.com/api", "https://example.com/api", false},
		{"http://localhost:8080", "http://localhost:8080", false},
		{"staging", "", true},
	}
	for _, tc := range cases {
		cfg := &Config{Endpoint: tc.endpoint}
		got, err := cfg.EndpointURL()
		if (err != nil) != tc.wantErr {
			t.Errorf("Endpoint %q: got err=%v, want error=%v", tc.endpoint, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Endpoint %q: got %q, want %q", tc.endpoint, got, tc.want)
		}
	}
}

func TestRetriesOrDefault(t *testing.T) {
	if got := (&Config{}).RetriesOrDefault(); got != DefaultRetries {
		t.Errorf("expected default %d, got %d", DefaultRetries, got)
	}
	if got := (&Config{Retries: 7}).RetriesOrDefault(); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestRetryBackoff(t *testing.T) {
	if got := (&Config{}).RetryBackoff(); got != time.Second {
		t.Errorf("expected default 1s, got %v", got)
	}
	if got := (&Config{RetryBackoffSeconds: 0.25}).RetryBackoff(); got != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", got)
	}
}

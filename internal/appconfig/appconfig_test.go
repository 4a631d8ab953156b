// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoad verifies that a valid configuration file is loaded without error,
// that invalid JSON fails, and that an explicit nonexistent path is rejected
// while the missing default path falls back to a usable zero config.
func TestLoad(t *testing.T) {
	validConfig := `{
        "debug": true,
        "timeout": 15,
        "geocodeUrl": "http://localhost:9001/",
        "httpToken": "secret"
    }`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(validConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if !cfg.Debug {
		t.Fatal("expected debug to be true")
	}
	if cfg.RequestTimeout() != 15*time.Second {
		t.Fatalf("expected request timeout of 15s, got %v", cfg.RequestTimeout())
	}
	if cfg.GeocodeBaseURL() != "http://localhost:9001" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.GeocodeBaseURL())
	}
	if cfg.HTTPToken != "secret" {
		t.Fatalf("unexpected http token: %q", cfg.HTTPToken)
	}

	invalidJSON := `{ "debug": `
	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte(invalidJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(badPath); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("Load() with explicit missing path should have failed")
	}
}

// TestLoadMissingDefault verifies that the absence of the default config file
// is not a startup failure.
func TestLoadMissingDefault(t *testing.T) {
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(prev) }()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Fatalf("expected default timeout of 30s, got %v", cfg.RequestTimeout())
	}
}

// TestLoadHFTokenFromEnv verifies the image-generation credential is sourced
// from the environment, never from the file.
func TestLoadHFTokenFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HF_TOKEN", "hf_test_token")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.HFToken != "hf_test_token" {
		t.Fatalf("expected credential from env, got %q", cfg.HFToken)
	}
}

// TestAccessorDefaults exercises the accessor fallbacks on a zero config.
func TestAccessorDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	if cfg.LogFilePath() != "handytools.log" {
		t.Fatalf("unexpected default log file: %q", cfg.LogFilePath())
	}
	if cfg.ListenAddr() != ":8085" {
		t.Fatalf("unexpected default listen addr: %q", cfg.ListenAddr())
	}
	if cfg.GeocodeBaseURL() != "https://nominatim.openstreetmap.org" {
		t.Fatalf("unexpected default geocode URL: %q", cfg.GeocodeBaseURL())
	}
	if cfg.ForecastBaseURL() != "https://api.open-meteo.com" {
		t.Fatalf("unexpected default forecast URL: %q", cfg.ForecastBaseURL())
	}
	if cfg.InferenceBaseURL() != "https://router.huggingface.co" {
		t.Fatalf("unexpected default inference URL: %q", cfg.InferenceBaseURL())
	}
	if cfg.ServerBinaryPath() != "handytools" {
		t.Fatalf("unexpected default server binary: %q", cfg.ServerBinaryPath())
	}
}

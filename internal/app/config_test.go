package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:1234" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
	if !cfg.History {
		t.Error("History should default to true")
	}
}

func TestLoadConfigClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "base_url: \"\"\ntemperature: 5.0\nrequest_timeout_seconds: -1\nmax_context_files: 99\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:1234" {
		t.Errorf("empty base_url not defaulted: %q", cfg.BaseURL)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("out-of-range temperature not reset: %v", cfg.Temperature)
	}
	if cfg.RequestTimeout != 60 {
		t.Errorf("negative timeout not reset: %d", cfg.RequestTimeout)
	}
	if cfg.MaxContextFiles != 10 {
		t.Errorf("max_context_files not capped: %d", cfg.MaxContextFiles)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SARA_BASE_URL", "http://10.0.0.5:1234")
	t.Setenv("SARA_MODEL", "qwen2.5-coder")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "http://10.0.0.5:1234" {
		t.Errorf("env base URL not applied: %q", cfg.BaseURL)
	}
	if cfg.Model != "qwen2.5-coder" {
		t.Errorf("env model not applied: %q", cfg.Model)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sara", "config.yml")
	want := DefaultConfig()
	want.Model = "llama-3.1-8b"
	want.MaxTokens = 2048

	if err := SaveConfig(want, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Model != want.Model || got.MaxTokens != want.MaxTokens {
		t.Errorf("round trip mismatch: got %+v", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != ":8000" {
		t.Fatalf("unexpected default address %q", cfg.ServerAddress)
	}
	if cfg.ConversationsDir != "conversations" {
		t.Fatalf("unexpected default conversations dir %q", cfg.ConversationsDir)
	}
	if cfg.Gemini.Model != "gemini-1.5-flash" {
		t.Fatalf("unexpected default model %q", cfg.Gemini.Model)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"server_address": ":9000", "gemini": {"api_key": "from-file", "model": "gemini-pro"}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != ":9000" {
		t.Fatalf("file value not applied: %q", cfg.ServerAddress)
	}
	if cfg.Gemini.Model != "gemini-pro" {
		t.Fatalf("file model not applied: %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.APIKey != "from-env" {
		t.Fatalf("env override not applied: %q", cfg.Gemini.APIKey)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "API_KEY", "GEMINI_ACCESS_TOKEN", "TODO_MODEL"} {
		t.Setenv(k, "")
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("expected model %q, got %q", DefaultModel, cfg.Model)
	}
	if cfg.SnapshotKey != DefaultSnapshotKey {
		t.Errorf("expected snapshot key %q, got %q", DefaultSnapshotKey, cfg.SnapshotKey)
	}
	if cfg.HasCredential() {
		t.Error("expected no credential")
	}
}

func TestNew_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "model = \"gemini-2.0-flash\"\nendpoint = \"http://localhost:9999/\"\nsnapshot_key = \"work\"\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("expected model from file, got %q", cfg.Model)
	}
	if cfg.Endpoint != "http://localhost:9999/" {
		t.Errorf("expected endpoint from file, got %q", cfg.Endpoint)
	}
	if cfg.SnapshotKey != "work" {
		t.Errorf("expected snapshot key from file, got %q", cfg.SnapshotKey)
	}
}

func TestNew_InvalidConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("model = "), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := New(dir); err == nil {
		t.Error("expected error for invalid config file")
	}
}

func TestNew_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("model = \"from-file\"\n"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("TODO_MODEL", "from-env")
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != "from-env" {
		t.Errorf("expected model from env, got %q", cfg.Model)
	}
	if cfg.APIKey != "legacy-key" {
		t.Errorf("expected API_KEY fallback, got %q", cfg.APIKey)
	}
	if !cfg.HasCredential() {
		t.Error("expected credential to be configured")
	}
}

func TestNew_GeminiKeyWinsOverLegacyKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "primary")
	t.Setenv("API_KEY", "legacy")

	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "primary" {
		t.Errorf("expected GEMINI_API_KEY to win, got %q", cfg.APIKey)
	}
}

func TestHasCredential_AccessToken(t *testing.T) {
	cfg := &Config{AccessToken: "ya29.token"}
	if !cfg.HasCredential() {
		t.Error("expected access token to count as a credential")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("expected XDG path, got %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("tab width = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Editor.MessageTimeout != 5 {
		t.Fatalf("message timeout = %d, want 5", cfg.Editor.MessageTimeout)
	}
	if cfg.Log.Debug {
		t.Fatalf("debug on by default")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("QUECTO_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("config = %+v, want defaults", cfg)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUECTO_CONFIG_HOME", dir)
	content := "[editor]\ntab-width = 8\n\n[log]\ndebug = true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("tab width = %d, want 8", cfg.Editor.TabWidth)
	}
	// Unset keys keep their defaults.
	if cfg.Editor.MessageTimeout != 5 {
		t.Fatalf("message timeout = %d, want default 5", cfg.Editor.MessageTimeout)
	}
	if !cfg.Log.Debug {
		t.Fatalf("debug not enabled")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUECTO_CONFIG_HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[editor\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("malformed config loaded without error")
	}
}

func TestLoadClampsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUECTO_CONFIG_HOME", dir)
	content := "[editor]\ntab-width = 0\nmessage-timeout = -3\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("tab width = %d, want clamped 4", cfg.Editor.TabWidth)
	}
	if cfg.Editor.MessageTimeout != 0 {
		t.Fatalf("message timeout = %d, want clamped 0", cfg.Editor.MessageTimeout)
	}
}

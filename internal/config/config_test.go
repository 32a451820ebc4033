package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points every search path location at empty temp directories so
// tests never pick up a real config file.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("TWORLD_CONFIG", "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.PacksDir != "packs" {
		t.Errorf("Expected packs dir %q, got %q", "packs", cfg.PacksDir)
	}
	if cfg.Database != "~/.tworld/results.db" {
		t.Errorf("Expected database %q, got %q", "~/.tworld/results.db", cfg.Database)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level %q, got %q", "info", cfg.LogLevel)
	}
	if !cfg.Engine.SanityChecks || !cfg.Engine.StrictInit || !cfg.Engine.StrictCloners {
		t.Error("Expected all engine checks enabled by default")
	}
	if cfg.Convert.GhostBlocks || cfg.Convert.Strict {
		t.Error("Expected conversion options disabled by default")
	}
}

func TestLoadWithoutAnyFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "packs_dir: /srv/packs\nengine:\n  sanity_checks: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PacksDir != "/srv/packs" {
		t.Errorf("Expected packs dir %q, got %q", "/srv/packs", cfg.PacksDir)
	}
	if cfg.Engine.SanityChecks {
		t.Error("Expected sanity checks disabled")
	}
	// Settings the file omits keep their defaults.
	if cfg.Database != "~/.tworld/results.db" {
		t.Errorf("Expected default database, got %q", cfg.Database)
	}
	if !cfg.Engine.StrictInit {
		t.Error("Expected strict init to keep its default")
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing explicit config")
	}
}

func TestLoadEnvPath(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "env.yaml")
	writeConfig(t, path, "log_level: debug\n")
	t.Setenv("TWORLD_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level %q, got %q", "debug", cfg.LogLevel)
	}
}

func TestLoadLocalFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, filepath.Join(dir, "tworld.yaml"), "packs_dir: here\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PacksDir != "here" {
		t.Errorf("Expected packs dir %q, got %q", "here", cfg.PacksDir)
	}
}

func TestLoadHomeFile(t *testing.T) {
	isolate(t)

	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, filepath.Join(home, ".config", "tworld", "config.yaml"), "database: /tmp/other.db\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database != "/tmp/other.db" {
		t.Errorf("Expected database %q, got %q", "/tmp/other.db", cfg.Database)
	}
}

func TestLoadEnvBeatsLocalFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, filepath.Join(dir, "tworld.yaml"), "log_level: warn\n")

	envPath := filepath.Join(t.TempDir(), "env.yaml")
	writeConfig(t, envPath, "log_level: debug\n")
	t.Setenv("TWORLD_CONFIG", envPath)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected env config to win, got log level %q", cfg.LogLevel)
	}
}

func TestLoadBadYAML(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, filepath.Join(dir, "tworld.yaml"), "packs_dir: [broken\n")

	if _, err := Load(""); err == nil {
		t.Error("Expected error for unparseable config")
	}
}

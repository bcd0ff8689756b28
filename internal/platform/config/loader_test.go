package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader("").WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("fetch timeout = %v, expected 10s", cfg.Fetch.Timeout)
	}
	if cfg.Limits.MaxFileSize != 10*1024*1024 {
		t.Errorf("max file size = %d, expected 10 MiB", cfg.Limits.MaxFileSize)
	}
	if cfg.Limits.MaxPixels != 16_000_000 {
		t.Errorf("max pixels = %d, expected 16000000", cfg.Limits.MaxPixels)
	}
	if cfg.Processing.MaxDimension != 256 {
		t.Errorf("max dimension = %d, expected 256", cfg.Processing.MaxDimension)
	}
	if len(cfg.Guard.AllowedHosts) != 2 {
		t.Errorf("allowed hosts = %v, expected two defaults", cfg.Guard.AllowedHosts)
	}
}

func TestLoad_FileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("server:\n  port: 9090\nlimits:\n  max_width: 2048\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewLoader(path).WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, expected 9090", cfg.Server.Port)
	}
	if cfg.Limits.MaxWidth != 2048 {
		t.Errorf("max width = %d, expected 2048", cfg.Limits.MaxWidth)
	}
	// Untouched fields keep defaults.
	if cfg.Limits.MaxHeight != 4096 {
		t.Errorf("max height = %d, expected default 4096", cfg.Limits.MaxHeight)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DYELENS_PORT", "7070")

	cfg, err := NewLoader("").WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, expected env override 7070", cfg.Server.Port)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, expected default 8080", cfg.Server.Port)
	}
}

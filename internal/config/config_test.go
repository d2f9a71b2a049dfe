package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lightbox/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config file")
	}
	if cfg.Images.MaxFileSizeMB != 30 {
		t.Fatalf("unexpected default max file size: %d", cfg.Images.MaxFileSizeMB)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected default logging settings: %+v", cfg.Logging)
	}
	if !filepath.IsAbs(cfg.Paths.StagingDir) {
		t.Fatalf("expected staging dir to be absolute, got %q", cfg.Paths.StagingDir)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `/data"
staging_dir = "` + dir + `/staging"
library_dir = "` + dir + `/library"
log_dir = "` + dir + `/logs"

[images]
max_file_size_mb = 5
max_width = 640
max_height = 480
jpeg_quality = 70

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: exists=%v path=%q", exists, resolved)
	}
	if cfg.Images.MaxFileSizeMB != 5 || cfg.Images.MaxWidth != 640 {
		t.Fatalf("overrides not applied: %+v", cfg.Images)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging values not normalized: %+v", cfg.Logging)
	}
	if cfg.MaxFileSizeBytes() != 5<<20 {
		t.Fatalf("unexpected byte ceiling: %d", cfg.MaxFileSizeBytes())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[images]
jpeg_quality = 400
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "jpeg_quality") {
		t.Fatalf("expected jpeg_quality validation error, got %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.StagingDir = filepath.Join(dir, "staging")
	cfg.Paths.LibraryDir = filepath.Join(dir, "library")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, d := range []string{cfg.Paths.DataDir, cfg.Paths.StagingDir, cfg.Paths.LogDir} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", d, err)
		}
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	if !strings.Contains(config.SampleConfig(), "max_file_size_mb = 30") {
		t.Fatal("sample config drifted from the default size ceiling")
	}
}

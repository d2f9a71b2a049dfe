// Package testsupport provides shared helpers for lightbox tests: isolated
// configurations, generated raster fixtures, and store setup.
package testsupport

import (
	"path/filepath"
	"testing"

	"lightbox/internal/config"
)

// NewConfig returns a Config rooted in a per-test temporary directory with all
// required directories created.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.StagingDir = filepath.Join(dir, "staging")
	cfg.Paths.LibraryDir = filepath.Join(dir, "library")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return &cfg
}

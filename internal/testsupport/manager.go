package testsupport

import (
	"testing"

	"lightbox/internal/config"
	"lightbox/internal/logging"
	"lightbox/internal/staging"
)

// MustNewManager creates a staging manager for tests and registers cleanup.
func MustNewManager(t testing.TB, cfg *config.Config) *staging.Manager {
	t.Helper()

	manager, err := staging.NewManager(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("staging.NewManager: %v", err)
	}
	t.Cleanup(func() {
		manager.Close()
	})
	return manager
}

package testsupport

import (
	"testing"

	"lightbox/internal/blobstore"
	"lightbox/internal/config"
)

// MustOpenStore opens a blobstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *blobstore.Store {
	t.Helper()

	store, err := blobstore.Open(cfg)
	if err != nil {
		t.Fatalf("blobstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

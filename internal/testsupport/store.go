package testsupport

import (
	"context"
	"testing"

	"eitbwatch/internal/catalog"
	"eitbwatch/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg.Paths.DatabasePath)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Upsert merges an observation for tests using the provided store.
func Upsert(t testing.TB, store *catalog.Store, obs catalog.Observation) int64 {
	t.Helper()

	id, err := store.Upsert(context.Background(), obs)
	if err != nil {
		t.Fatalf("store.Upsert: %v", err)
	}
	return id
}

// IntPtr returns a pointer to v for optional observation fields.
func IntPtr(v int) *int { return &v }

// BoolPtr returns a pointer to v for optional observation fields.
func BoolPtr(v bool) *bool { return &v }

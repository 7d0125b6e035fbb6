// Package storetest opens throwaway stores for package tests
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"newsfeed/internal/platform/store"
)

// SQLite opens a file-backed SQLite store under t.TempDir and closes it on cleanup
func SQLite(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	cfg := store.Config{
		Driver: store.DriverSQLite,
		SQLite: store.SQLiteConfig{Path: filepath.Join(t.TempDir(), "publication.db"), BusyTimeoutMs: 1000},
	}
	s, err := store.Open(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatalf("storetest: open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

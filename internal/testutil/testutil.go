// Package testutil provides shared test helpers for setting up stores and artifact directories.
package testutil

import (
	"os"
	"testing"

	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/storage"
)

// TestDB creates a temporary SQLite resume store that is automatically cleaned up.
func TestDB(t *testing.T) *resume.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "resumeforge-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := resume.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestArtifacts creates a temporary artifact directory with a storage.Provider.
func TestArtifacts(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

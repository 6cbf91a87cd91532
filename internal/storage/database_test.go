package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	return db
}

func TestNewAndMigrate(t *testing.T) {
	db := testDB(t)

	// Migrate is idempotent.
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error: %v", err)
	}

	for _, table := range []string{"documents", "query_logs"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}
}

func TestNewInvalidPath(t *testing.T) {
	if _, err := New("/nonexistent-root-dir/sub/test.db"); err == nil {
		t.Error("New() with unwritable path succeeded, want error")
	}
}

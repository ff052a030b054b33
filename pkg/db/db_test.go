package db_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"langcat/pkg/db"
)

func TestDB(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "db_test.db")

	d, err := db.Init(path)
	if err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if d == nil {
		t.Fatal("Init() returned nil DB")
	}

	var n int
	if err := d.QueryRow("SELECT COUNT(*) FROM languages").Scan(&n); err != nil {
		t.Fatalf("languages table missing: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty table, got %d rows", n)
	}
	d.Close()

	// Reopening an existing file must succeed and keep the schema.
	d, err = db.OpenExisting(path)
	if err != nil {
		t.Fatalf("OpenExisting() failed: %v", err)
	}
	d.Close()
}

func TestOpenExisting_Missing(t *testing.T) {
	if _, err := db.OpenExisting(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestMigrate_AddsYearKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")

	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	if _, err := raw.Exec(`CREATE TABLE languages (
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		release_year TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT ''
	)`); err != nil {
		t.Fatalf("create old schema: %v", err)
	}
	if _, err := raw.Exec(`INSERT INTO languages (name, release_year) VALUES ('Go', '2009')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	raw.Close()

	d, err := db.OpenExisting(path)
	if err != nil {
		t.Fatalf("OpenExisting() failed: %v", err)
	}
	defer d.Close()

	var kind int
	if err := d.QueryRow("SELECT release_year_kind FROM languages WHERE name = 'Go'").Scan(&kind); err != nil {
		t.Fatalf("release_year_kind missing: %v", err)
	}
	if kind != 2 {
		t.Errorf("expected text kind 2 for an existing year, got %d", kind)
	}
}

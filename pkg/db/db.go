package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Register driver
)

// DB wraps the sql.DB connection.
type DB struct {
	*sql.DB
}

// Init opens (or creates) the database and runs migrations.
func Init(path string) (*DB, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}
	return open(path)
}

// OpenExisting opens a database that must already exist on disk.
func OpenExisting(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %w", err)
	}
	return open(path)
}

func open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	d := &DB{db}
	db.SetMaxOpenConns(1)

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return d, nil
}

func (d *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS languages (
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			release_year TEXT NOT NULL DEFAULT '',
			release_year_kind INTEGER NOT NULL DEFAULT 0,
			link TEXT NOT NULL DEFAULT ''
		);`,
	}

	for _, q := range queries {
		if _, err := d.Exec(q); err != nil {
			return err
		}
	}

	// Databases imported before the year kind was stored.
	var colCount int
	err := d.QueryRow("SELECT count(*) FROM pragma_table_info('languages') WHERE name='release_year_kind'").Scan(&colCount)
	if err == nil && colCount == 0 {
		if _, err := d.Exec("ALTER TABLE languages ADD COLUMN release_year_kind INTEGER NOT NULL DEFAULT 0"); err != nil {
			return fmt.Errorf("failed to add release_year_kind column: %w", err)
		}
		// Existing years were stored as plain text.
		if _, err := d.Exec("UPDATE languages SET release_year_kind = 2 WHERE release_year != ''"); err != nil {
			return fmt.Errorf("failed to backfill release_year_kind: %w", err)
		}
	}
	return err
}

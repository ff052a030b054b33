package store

import (
	"context"
	"fmt"

	"langcat/pkg/db"
	"langcat/pkg/model"
)

// LanguageStore reads and writes catalog records.
type LanguageStore interface {
	ListLanguages(ctx context.Context) ([]model.Language, error)
	ReplaceLanguages(ctx context.Context, records []model.Language) error
	Close() error
}

var _ LanguageStore = (*SQLiteStore)(nil)

// SQLiteStore implements LanguageStore.
type SQLiteStore struct {
	db *db.DB
}

// NewSQLiteStore creates a new store.
func NewSQLiteStore(db *db.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenExisting opens the store of a database file that must already exist.
func OpenExisting(path string) (*SQLiteStore, error) {
	d, err := db.OpenExisting(path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(d), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListLanguages returns all records in insertion order.
func (s *SQLiteStore) ListLanguages(ctx context.Context) ([]model.Language, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, description, release_year, release_year_kind, link FROM languages ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	defer rows.Close()

	records := []model.Language{}
	for rows.Next() {
		var name, desc, year, link string
		var kind int
		if err := rows.Scan(&name, &desc, &year, &kind, &link); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		records = append(records, model.NewLanguage(name, desc, model.NewYear(model.YearKind(kind), year), link))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate languages: %w", err)
	}
	return records, nil
}

// ReplaceLanguages swaps the table contents for records, keeping their order.
func (s *SQLiteStore) ReplaceLanguages(ctx context.Context, records []model.Language) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM languages`); err != nil {
		return fmt.Errorf("clear languages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO languages (name, description, release_year, release_year_kind, link) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		if _, err := stmt.ExecContext(ctx, r.Name, r.Description, r.ReleaseYear.String(), int(r.ReleaseYear.Kind()), r.Link); err != nil {
			return fmt.Errorf("insert %q: %w", r.Name, err)
		}
	}
	return tx.Commit()
}

// Package source provides the places a catalog can be loaded from.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"langcat/pkg/catalog"
	"langcat/pkg/model"
	"langcat/pkg/request"
	"langcat/pkg/store"
)

// Kinds of source accepted by New.
const (
	KindHTTP   = "http"
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// New builds a source of the given kind for location.
// The HTTP client is only used by the http kind and may be nil otherwise.
func New(kind, location string, client *request.Client) (catalog.Source, error) {
	if strings.TrimSpace(location) == "" {
		return nil, errors.New("catalog location is empty")
	}
	switch strings.ToLower(kind) {
	case KindHTTP:
		if client == nil {
			return nil, errors.New("http source needs a client")
		}
		return NewHTTP(client, location), nil
	case KindFile, "":
		return NewFile(location), nil
	case KindSQLite:
		return NewSQLite(location), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", kind)
	}
}

// HTTP fetches a JSON record list with a single GET.
type HTTP struct {
	client *request.Client
	url    string
}

func NewHTTP(client *request.Client, url string) *HTTP {
	return &HTTP{client: client, url: url}
}

func (s *HTTP) Name() string { return s.url }

func (s *HTTP) Load(ctx context.Context) ([]model.Language, error) {
	body, err := s.client.Get(ctx, s.url)
	if err != nil {
		var se *request.StatusError
		if errors.As(err, &se) {
			return nil, &catalog.FetchFailure{Status: se.Code}
		}
		return nil, &catalog.TransportFailure{Err: err}
	}
	return catalog.Decode(body)
}

// File reads a JSON record list from the local filesystem.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (s *File) Name() string { return s.path }

func (s *File) Load(ctx context.Context) ([]model.Language, error) {
	if err := ctx.Err(); err != nil {
		return nil, &catalog.TransportFailure{Err: err}
	}
	body, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &catalog.TransportFailure{Err: err}
	}
	return catalog.Decode(body)
}

// SQLite reads the languages table of an existing database file.
type SQLite struct {
	path string
	open func(path string) (store.LanguageStore, error)
}

func NewSQLite(path string) *SQLite {
	return &SQLite{path: path, open: openSQLite}
}

func openSQLite(path string) (store.LanguageStore, error) {
	st, err := store.OpenExisting(path)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *SQLite) Name() string { return "sqlite:" + s.path }

func (s *SQLite) Load(ctx context.Context) ([]model.Language, error) {
	st, err := s.open(s.path)
	if err != nil {
		return nil, &catalog.TransportFailure{Err: err}
	}
	defer st.Close()

	records, err := st.ListLanguages(ctx)
	if err != nil {
		return nil, &catalog.TransportFailure{Err: err}
	}
	return records, nil
}

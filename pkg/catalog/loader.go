package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"langcat/pkg/model"
)

// Source yields the raw catalog. Implementations classify their own failures
// as FetchFailure, TransportFailure or ParseFailure.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]model.Language, error)
}

// Policy decides what happens to records missing a required field.
type Policy string

const (
	PolicySkip    Policy = "skip"    // drop the record, log a warning
	PolicyDefault Policy = "default" // missing description becomes ""; missing name is dropped
	PolicyReject  Policy = "reject"  // fail the whole load
)

// ParsePolicy validates a policy name. Empty means PolicySkip.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicySkip, nil
	case PolicySkip, PolicyDefault, PolicyReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown missing-field policy %q (want skip, default or reject)", s)
	}
}

// Decode parses a JSON record list. Any decoding error is a ParseFailure.
func Decode(body []byte) ([]model.Language, error) {
	var records []model.Language
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &ParseFailure{Err: err}
	}
	if records == nil {
		return nil, &ParseFailure{Err: errors.New("body is not a record list")}
	}
	return records, nil
}

// Loader fills a Store from a Source, once.
type Loader struct {
	src    Source
	store  *Store
	policy Policy
}

// NewLoader creates a loader writing into store.
func NewLoader(src Source, store *Store, policy Policy) *Loader {
	if policy == "" {
		policy = PolicySkip
	}
	return &Loader{src: src, store: store, policy: policy}
}

// Load fetches the catalog and publishes it. On failure the store enters the
// Error state for good; nothing is retried.
func (l *Loader) Load(ctx context.Context) error {
	if l.store.State() != StateUnloaded {
		return ErrAlreadyLoaded
	}

	records, err := l.src.Load(ctx)
	if err == nil {
		records, err = l.apply(records)
	}
	if err != nil {
		attrs := []any{"source", l.src.Name(), "kind", Kind(err), "error", err}
		var fetch *FetchFailure
		if errors.As(err, &fetch) {
			attrs = append(attrs, "status", fetch.Status)
		}
		slog.Error("Catalog load failed", attrs...)

		if ferr := l.store.fail(err); ferr != nil {
			return ferr
		}
		return err
	}

	if err := l.store.publish(records); err != nil {
		return err
	}
	slog.Info("Catalog loaded", "source", l.src.Name(), "records", len(records))
	return nil
}

func (l *Loader) apply(records []model.Language) ([]model.Language, error) {
	out := make([]model.Language, 0, len(records))
	for i := range records {
		r := records[i]
		err := r.Validate()
		if err == nil {
			out = append(out, r)
			continue
		}

		switch l.policy {
		case PolicyReject:
			return nil, &ParseFailure{Err: fmt.Errorf("record %d: %w", i, err)}
		case PolicyDefault:
			if fixed := r.WithDefaults(); fixed.Validate() == nil {
				out = append(out, fixed)
				continue
			}
		}
		slog.Warn("Skipping catalog record", "index", i, "error", err)
	}
	return out, nil
}

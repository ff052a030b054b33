// Package catalog owns the load-once language catalog and the loader that fills it.
package catalog

import (
	"sync"

	"langcat/pkg/model"
)

// State is the lifecycle state of a Store.
type State int

const (
	StateUnloaded State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unloaded"
	}
}

// Store holds the catalog for the lifetime of the process.
// It moves from Unloaded to either Ready or Error exactly once.
type Store struct {
	mu      sync.RWMutex
	state   State
	records []model.Language
	err     error
}

// NewStore returns an empty, unloaded store.
func NewStore() *Store {
	return &Store{}
}

// publish stores records and marks the store ready.
func (s *Store) publish(records []model.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnloaded {
		return ErrAlreadyLoaded
	}
	s.records = records
	s.state = StateReady
	return nil
}

// fail marks the store as terminally failed.
func (s *Store) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnloaded {
		return ErrAlreadyLoaded
	}
	s.err = err
	s.state = StateError
	return nil
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the load failure, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Records returns the loaded catalog. Callers must treat it as read-only.
func (s *Store) Records() []model.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

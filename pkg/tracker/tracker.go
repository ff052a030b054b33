package tracker

import (
	"sync"
	"sync/atomic"
)

// Tracker counts catalog fetches and searches, keyed by source or channel name.
type Tracker struct {
	mu    sync.RWMutex
	stats map[string]*Stats
}

// Stats holds counters for one key.
// Fields are accessed atomically.
type Stats struct {
	FetchSuccess  int64
	FetchFailures int64
	Searches      int64
	ZeroResults   int64
}

// New creates a new Tracker.
func New() *Tracker {
	return &Tracker{
		stats: make(map[string]*Stats),
	}
}

// getStats returns the stats object for a key, creating it if needed.
func (t *Tracker) getStats(key string) *Stats {
	t.mu.RLock()
	s, ok := t.stats[key]
	t.mu.RUnlock()
	if ok {
		return s
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Double check
	if s, ok = t.stats[key]; ok {
		return s
	}
	s = &Stats{}
	t.stats[key] = s
	return s
}

func (t *Tracker) TrackFetchSuccess(source string) {
	atomic.AddInt64(&t.getStats(source).FetchSuccess, 1)
}

func (t *Tracker) TrackFetchFailure(source string) {
	atomic.AddInt64(&t.getStats(source).FetchFailures, 1)
}

// TrackSearch records one filter pass on a channel and whether it matched nothing.
func (t *Tracker) TrackSearch(channel string, matched int) {
	s := t.getStats(channel)
	atomic.AddInt64(&s.Searches, 1)
	if matched == 0 {
		atomic.AddInt64(&s.ZeroResults, 1)
	}
}

// Snapshot returns a copy of the current stats.
func (t *Tracker) Snapshot() map[string]Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]Stats, len(t.stats))
	for k, v := range t.stats {
		result[k] = Stats{
			FetchSuccess:  atomic.LoadInt64(&v.FetchSuccess),
			FetchFailures: atomic.LoadInt64(&v.FetchFailures),
			Searches:      atomic.LoadInt64(&v.Searches),
			ZeroResults:   atomic.LoadInt64(&v.ZeroResults),
		}
	}
	return result
}

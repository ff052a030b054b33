// Package browser wires the catalog loader and the search engine together.
// The Controller owns the catalog Store; the Loader writes it once and every
// InputChanged event reads it.
package browser

import (
	"context"
	"errors"
	"sync"

	"langcat/pkg/catalog"
	"langcat/pkg/model"
	"langcat/pkg/search"
	"langcat/pkg/tracker"
	"langcat/pkg/view"
)

// ErrUnavailable is returned by Search when the catalog failed to load.
var ErrUnavailable = errors.New("catalog unavailable")

// InputChanged fires on every change of the search input's value.
// A nil Value means the event carried no input control and is ignored.
type InputChanged struct {
	Value   *string
	Channel string // page, fragment, live, cli; used for stats only
}

// Input builds an event carrying value.
func Input(channel, value string) InputChanged {
	return InputChanged{Value: &value, Channel: channel}
}

// Controller is the application root for one catalog.
type Controller struct {
	store   *catalog.Store
	loader  *catalog.Loader
	tracker *tracker.Tracker

	startOnce sync.Once
	startErr  error
}

// New creates a controller with its own empty Store.
func New(src catalog.Source, policy catalog.Policy, tr *tracker.Tracker) *Controller {
	store := catalog.NewStore()
	return &Controller{
		store:   store,
		loader:  catalog.NewLoader(src, store, policy),
		tracker: tr,
	}
}

// Start loads the catalog and returns the initial, unfiltered view.
// Only the first call loads; later calls return the same outcome.
func (c *Controller) Start(ctx context.Context) (view.View, error) {
	c.startOnce.Do(func() {
		c.startErr = c.loader.Load(ctx)
	})
	v, _ := c.Handle(Input("initial", ""))
	return v, c.startErr
}

// Handle runs one filter+render pass for ev.
// It reports false when the event carries no input and nothing should change.
func (c *Controller) Handle(ev InputChanged) (view.View, bool) {
	if ev.Value == nil {
		return view.View{}, false
	}

	switch c.store.State() {
	case catalog.StateError:
		return view.Failed(), true
	case catalog.StateUnloaded:
		return view.Empty(), true
	}

	matches := search.Filter(c.store.Records(), *ev.Value)
	if c.tracker != nil && ev.Channel != "" {
		c.tracker.TrackSearch(ev.Channel, len(matches))
	}
	return view.Build(matches), true
}

// Search returns the matching records without rendering them.
func (c *Controller) Search(term string) ([]model.Language, error) {
	switch c.store.State() {
	case catalog.StateError:
		return nil, ErrUnavailable
	case catalog.StateUnloaded:
		return []model.Language{}, nil
	}
	return search.Filter(c.store.Records(), term), nil
}

// State reports the catalog lifecycle state.
func (c *Controller) State() catalog.State {
	return c.store.State()
}

// Size returns the number of loaded records.
func (c *Controller) Size() int {
	return c.store.Len()
}

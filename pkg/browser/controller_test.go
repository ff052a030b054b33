package browser

import (
	"context"
	"errors"
	"testing"

	"langcat/pkg/catalog"
	"langcat/pkg/model"
	"langcat/pkg/tracker"
	"langcat/pkg/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	records []model.Language
	err     error
	calls   int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(ctx context.Context) ([]model.Language, error) {
	s.calls++
	return s.records, s.err
}

func scenarioSource() *stubSource {
	return &stubSource{records: []model.Language{
		model.NewLanguage("Rust", "systems language", model.YearOf(2010), "https://rust-lang.org"),
		model.NewLanguage("Go", "concurrent language", model.YearOf(2009), "https://go.dev"),
	}}
}

func cardNames(v view.View) []string {
	var out []string
	for _, c := range v.Cards {
		out = append(out, c.Name)
	}
	return out
}

func TestController_Scenarios(t *testing.T) {
	c := New(scenarioSource(), catalog.PolicySkip, tracker.New())
	initial, err := c.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust", "Go"}, cardNames(initial))

	tests := []struct {
		name      string
		term      string
		wantKind  view.Kind
		wantNames []string
	}{
		{name: "A_NameMatch", term: "go", wantKind: view.KindCards, wantNames: []string{"Go"}},
		{name: "B_DescriptionMatch", term: "language", wantKind: view.KindCards, wantNames: []string{"Rust", "Go"}},
		{name: "C_EmptyTerm", term: "", wantKind: view.KindCards, wantNames: []string{"Rust", "Go"}},
		{name: "D_NoMatch", term: "zzz", wantKind: view.KindFeedback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := c.Handle(Input("test", tt.term))
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, v.Kind)
			assert.Equal(t, tt.wantNames, cardNames(v))
			if tt.wantKind == view.KindFeedback {
				assert.Equal(t, view.NoMatchesMessage, v.Message)
			}
		})
	}
}

func TestController_LoadFailureIsTerminal(t *testing.T) {
	src := &stubSource{err: &catalog.FetchFailure{Status: 500}}
	c := New(src, catalog.PolicySkip, nil)

	v, err := c.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, view.KindError, v.Kind)
	assert.Empty(t, v.Cards)

	for _, term := range []string{"", "go", "zzz"} {
		v, ok := c.Handle(Input("test", term))
		require.True(t, ok)
		assert.Equal(t, view.Failed(), v)
	}

	_, err = c.Search("go")
	assert.ErrorIs(t, err, ErrUnavailable)

	// A second start does not fetch again.
	_, err = c.Start(context.Background())
	var ff *catalog.FetchFailure
	assert.True(t, errors.As(err, &ff))
	assert.Equal(t, 1, src.calls)
}

func TestController_NilInputIsNoop(t *testing.T) {
	c := New(scenarioSource(), catalog.PolicySkip, nil)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	_, ok := c.Handle(InputChanged{Channel: "live"})
	assert.False(t, ok)
}

func TestController_BeforeLoad(t *testing.T) {
	src := scenarioSource()
	c := New(src, catalog.PolicySkip, nil)

	v, ok := c.Handle(Input("test", "go"))
	require.True(t, ok)
	assert.Equal(t, view.KindEmpty, v.Kind)
	assert.Equal(t, catalog.StateUnloaded, c.State())

	records, err := c.Search("go")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, src.calls)
}

func TestController_SearchLeavesCatalogIntact(t *testing.T) {
	c := New(scenarioSource(), catalog.PolicySkip, nil)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	got, err := c.Search("rust")
	require.NoError(t, err)
	require.Len(t, got, 1)
	got[0].Name = "mutated"

	all, err := c.Search("")
	require.NoError(t, err)
	assert.Equal(t, "Rust", all[0].Name)
	assert.Equal(t, 2, c.Size())
}

func TestController_TracksSearches(t *testing.T) {
	tr := tracker.New()
	c := New(scenarioSource(), catalog.PolicySkip, tr)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	c.Handle(Input("live", "go"))
	c.Handle(Input("live", "zzz"))

	s := tr.Snapshot()["live"]
	assert.Equal(t, int64(2), s.Searches)
	assert.Equal(t, int64(1), s.ZeroResults)
}

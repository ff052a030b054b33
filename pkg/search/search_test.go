package search

import (
	"testing"

	"langcat/pkg/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func scenarioCatalog() []model.Language {
	return []model.Language{
		model.NewLanguage("Rust", "systems language", model.YearOf(2010), "https://rust-lang.org"),
		model.NewLanguage("Go", "concurrent language", model.YearOf(2009), "https://go.dev"),
	}
}

func names(records []model.Language) []string {
	out := make([]string, 0, len(records))
	for i := range records {
		out = append(out, records[i].Name)
	}
	return out
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "go", Normalize("  GO \t"))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "c++", Normalize("C++"))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "NameMatch", term: "go", want: []string{"Go"}},
		{name: "DescriptionMatchKeepsOrder", term: "language", want: []string{"Rust", "Go"}},
		{name: "EmptyTermMatchesAll", term: "", want: []string{"Rust", "Go"}},
		{name: "WhitespaceTermMatchesAll", term: "   ", want: []string{"Rust", "Go"}},
		{name: "NoMatch", term: "zzz", want: []string{}},
		{name: "CaseInsensitive", term: "RUST", want: []string{"Rust"}},
		{name: "TrimmedTerm", term: "  systems ", want: []string{"Rust"}},
		{name: "InnerSpaceIsLiteral", term: "concurrent language", want: []string{"Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(scenarioCatalog(), tt.term)))
		})
	}
}

func TestFilter_DoesNotMutateCatalog(t *testing.T) {
	catalog := scenarioCatalog()
	before := scenarioCatalog()

	first := Filter(catalog, "rust")
	second := Filter(catalog, "rust")

	opt := cmp.AllowUnexported(model.Language{}, model.Year{})
	if diff := cmp.Diff(first, second, opt); diff != "" {
		t.Errorf("repeated filter differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, catalog, opt); diff != "" {
		t.Errorf("catalog mutated (-before +after):\n%s", diff)
	}

	// The result must not alias the catalog's backing array.
	all := Filter(catalog, "")
	all[0].Name = "changed"
	assert.Equal(t, "Rust", catalog[0].Name)
}

func TestFilter_SubsetProperty(t *testing.T) {
	catalog := []model.Language{
		model.NewLanguage("Python", "General purpose", model.YearOf(1991), ""),
		model.NewLanguage("JavaScript", "Runs in browsers", model.YearOf(1995), ""),
		model.NewLanguage("Java", "JVM language", model.YearOf(1995), ""),
		model.NewLanguage("Kotlin", "Modern JVM language", model.YearOf(2011), ""),
	}

	for _, term := range []string{"java", "jvm", "py", "a", "", "x"} {
		got := Filter(catalog, term)
		// Every result matches and every match is present, in catalog order.
		var want []model.Language
		for i := range catalog {
			if Matches(&catalog[i], Normalize(term)) {
				want = append(want, catalog[i])
			}
		}
		assert.Equal(t, names(want), names(got), "term %q", term)
	}
}

func TestFilter_NoDiacriticFolding(t *testing.T) {
	catalog := []model.Language{
		model.NewLanguage("Língua", "ção", model.Year{}, ""),
	}
	assert.Len(t, Filter(catalog, "lín"), 1)
	assert.Len(t, Filter(catalog, "lin"), 0)
	assert.Len(t, Filter(catalog, "ÇÃO"), 1)
}

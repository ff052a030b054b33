// Package render turns view models into the card container markup and the page skeleton.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"langcat/pkg/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// DefaultTitle is used when no page title is configured.
const DefaultTitle = "Base de Conhecimento de Linguagens"

// Renderer writes views as HTML. It is safe for concurrent use.
type Renderer struct {
	tmpl  *template.Template
	title string
}

// New parses the embedded templates.
func New(title string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if title == "" {
		title = DefaultTitle
	}
	return &Renderer{tmpl: tmpl, title: title}, nil
}

// Render writes the inner markup of the card container. Whatever was shown
// before is replaced as a whole by the caller.
func (r *Renderer) Render(w io.Writer, v view.View) error {
	return r.tmpl.ExecuteTemplate(w, "cards", v)
}

// Fragment renders v to a string.
func (r *Renderer) Fragment(v view.View) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type pageData struct {
	Title string
	Term  string
	View  view.View
}

// Page writes the full page with the search input prefilled with term.
func (r *Renderer) Page(w io.Writer, v view.View, term string) error {
	return r.tmpl.ExecuteTemplate(w, "page", pageData{Title: r.title, Term: term, View: v})
}

// Static returns the embedded stylesheet and scripts rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("Failed to subtree static from embedded assets: %v", err))
	}
	return sub
}

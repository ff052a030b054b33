// Package view maps catalog records to display-ready view models.
package view

import "langcat/pkg/model"

// Messages shown in place of the card list.
const (
	NoMatchesMessage   = "Nenhuma linguagem encontrada com esse termo."
	LoadFailureMessage = "⚠️ Não foi possível carregar a base de conhecimento. Tente novamente mais tarde."
	LinkLabel          = "Saiba mais..."
)

// Kind distinguishes what a View displays.
type Kind string

const (
	KindEmpty    Kind = "empty"    // catalog not loaded yet
	KindCards    Kind = "cards"    // one or more cards
	KindFeedback Kind = "feedback" // search matched nothing
	KindError    Kind = "error"    // catalog failed to load
)

// Card is one rendered record.
type Card struct {
	Name        string `json:"name"`
	Year        string `json:"year"`
	Description string `json:"description"`
	Link        string `json:"link"`
	LinkLabel   string `json:"link_label"`
	NewWindow   bool   `json:"new_window"`
}

// View is everything the card container shows after one render.
// Exactly one of Cards or Message is populated, except for KindEmpty.
type View struct {
	Kind    Kind   `json:"kind"`
	Cards   []Card `json:"cards,omitempty"`
	Message string `json:"message,omitempty"`
}

// Build turns a filtered record list into a View.
// An empty list yields the no-matches feedback view.
func Build(records []model.Language) View {
	if len(records) == 0 {
		return View{Kind: KindFeedback, Message: NoMatchesMessage}
	}

	cards := make([]Card, 0, len(records))
	for i := range records {
		cards = append(cards, NewCard(&records[i]))
	}
	return View{Kind: KindCards, Cards: cards}
}

// NewCard maps a single record.
func NewCard(l *model.Language) Card {
	return Card{
		Name:        l.Name,
		Year:        l.ReleaseYear.String(),
		Description: l.Description,
		Link:        l.Link,
		LinkLabel:   LinkLabel,
		NewWindow:   true,
	}
}

// Failed is the view shown for the rest of the session after a load failure.
func Failed() View {
	return View{Kind: KindError, Message: LoadFailureMessage}
}

// Empty is the view of a container with nothing in it.
func Empty() View {
	return View{Kind: KindEmpty}
}

package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingField is returned by Validate when a required field is absent.
var ErrMissingField = errors.New("missing required field")

// Language is one catalog record.
// The JSON keys match the data file published by the catalog provider.
type Language struct {
	Name        string `json:"nome"`           // required, non-empty
	Description string `json:"descricao"`      // required, may be empty
	ReleaseYear Year   `json:"ano_lancamento"` // display only
	Link        string `json:"link"`           // display only, not validated

	// Set during decoding; false when the key was absent from the source.
	hasName        bool
	hasDescription bool
}

// NewLanguage builds a record with both required fields marked present.
func NewLanguage(name, description string, year Year, link string) Language {
	return Language{
		Name:           name,
		Description:    description,
		ReleaseYear:    year,
		Link:           link,
		hasName:        true,
		hasDescription: true,
	}
}

// UnmarshalJSON decodes a record and remembers which required keys were present.
func (l *Language) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        *string `json:"nome"`
		Description *string `json:"descricao"`
		ReleaseYear Year    `json:"ano_lancamento"`
		Link        string  `json:"link"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*l = Language{ReleaseYear: raw.ReleaseYear, Link: raw.Link}
	if raw.Name != nil {
		l.Name = *raw.Name
		l.hasName = true
	}
	if raw.Description != nil {
		l.Description = *raw.Description
		l.hasDescription = true
	}
	return nil
}

// HasDescription reports whether the description key was present in the source.
func (l *Language) HasDescription() bool {
	return l.hasDescription
}

// Validate checks the required fields.
// A missing description is reported; an empty one is fine.
func (l *Language) Validate() error {
	if !l.hasName || strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: nome", ErrMissingField)
	}
	if !l.hasDescription {
		return fmt.Errorf("%w: descricao (%s)", ErrMissingField, l.Name)
	}
	return nil
}

// WithDefaults returns a copy with the description marked present.
func (l Language) WithDefaults() Language {
	l.hasDescription = true
	return l
}

// YearKind records how the provider wrote a release year.
type YearKind int

const (
	YearNone    YearKind = iota // absent or null
	YearNumeric                 // a JSON number
	YearText                    // a JSON string
)

// Year is a release year as given by the provider. The raw token is kept so
// that re-encoding writes back exactly what was read.
type Year struct {
	text string
	kind YearKind
}

// YearOf builds a numeric year.
func YearOf(y int) Year {
	return Year{text: strconv.Itoa(y), kind: YearNumeric}
}

// NewYear builds a year of the given kind. A numeric kind whose text is not a
// JSON number is kept as text.
func NewYear(kind YearKind, text string) Year {
	switch kind {
	case YearNumeric:
		if !isNumberToken(text) {
			return Year{text: text, kind: YearText}
		}
	case YearText:
	default:
		return Year{}
	}
	return Year{text: text, kind: kind}
}

// Kind reports how the year was written.
func (y Year) Kind() YearKind {
	return y.kind
}

func (y Year) String() string {
	return y.text
}

// UnmarshalJSON accepts a number, a string or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = Year{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year{text: s, kind: YearText}
		return nil
	}

	if !isNumberToken(string(data)) {
		return fmt.Errorf("release year: unexpected token %s", data)
	}
	*y = Year{text: string(data), kind: YearNumeric}
	return nil
}

// MarshalJSON writes the year back in the form it was read.
func (y Year) MarshalJSON() ([]byte, error) {
	switch y.kind {
	case YearNumeric:
		return []byte(y.text), nil
	case YearText:
		return json.Marshal(y.text)
	default:
		return []byte("null"), nil
	}
}

func isNumberToken(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	var n json.Number
	return json.Valid([]byte(s)) && json.Unmarshal([]byte(s), &n) == nil
}

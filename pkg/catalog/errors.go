package catalog

import (
	"errors"
	"fmt"
)

// ErrAlreadyLoaded is returned when a store that has left the Unloaded state is loaded again.
var ErrAlreadyLoaded = errors.New("catalog already loaded")

// FetchFailure is a non-success response status from the data source.
type FetchFailure struct {
	Status int
}

func (e *FetchFailure) Error() string {
	return fmt.Sprintf("fetch failed: status %d", e.Status)
}

// TransportFailure means the data source could not be reached or read.
type TransportFailure struct {
	Err error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("transport failed: %v", e.Err)
}

func (e *TransportFailure) Unwrap() error { return e.Err }

// ParseFailure means the data source answered with something that is not a record list.
type ParseFailure struct {
	Err error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse failed: %v", e.Err)
}

func (e *ParseFailure) Unwrap() error { return e.Err }

// Kind names the failure class of err for logs and stats.
func Kind(err error) string {
	var (
		fetch     *FetchFailure
		transport *TransportFailure
		parse     *ParseFailure
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fetch):
		return "fetch"
	case errors.As(err, &transport):
		return "transport"
	case errors.As(err, &parse):
		return "parse"
	case errors.Is(err, ErrAlreadyLoaded):
		return "already_loaded"
	default:
		return "unknown"
	}
}

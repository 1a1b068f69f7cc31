package books

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidURL indicates the request URL could not be used
	ErrInvalidURL = errors.New("invalid request url")
	// ErrTransport indicates the HTTP exchange failed before a body was read
	ErrTransport = errors.New("http request failed")
	// ErrUnexpectedStatus indicates the server answered with something other than 200
	ErrUnexpectedStatus = errors.New("unexpected http status")
	// ErrParse indicates the response body is not a usable search document
	ErrParse = errors.New("malformed book search response")
)

// StatusError carries the status code of a non-200 response
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status: %d %s", e.Code, http.StatusText(e.Code))
}

// Is lets errors.Is match StatusError against ErrUnexpectedStatus
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Book is a single search result ready for display
type Book struct {
	Title string `json:"title"`
	// Authors holds every author followed by a newline, or "" when unknown
	Authors string `json:"authors,omitempty"`
}

// HasAuthors reports whether author information was present
func (b *Book) HasAuthors() bool {
	return b.Authors != ""
}

// AuthorList splits Authors back into individual names
func (b *Book) AuthorList() []string {
	if b.Authors == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(b.Authors, "\n"), "\n")
}

// Outcome classifies a fetch result
type Outcome string

const (
	// OutcomeBooks means at least one book was extracted
	OutcomeBooks Outcome = "books"
	// OutcomeEmpty means a document was parsed but yielded no books
	OutcomeEmpty Outcome = "empty"
	// OutcomeAbsent means no response body was obtained at all
	OutcomeAbsent Outcome = "absent"
)

// Result is the outcome of a single fetch.
//
// Books is nil when no body was obtained (the absent result) and a non-nil,
// possibly empty slice once a body has been parsed. Err describes the
// condition that was recovered from, if any; a non-nil Err never means the
// Books slice is unusable.
type Result struct {
	Books  []*Book
	Err    error
	Status int
}

// Absent reports whether no response body was obtained
func (r *Result) Absent() bool {
	return r.Books == nil
}

// Outcome classifies the result for display and history
func (r *Result) Outcome() Outcome {
	switch {
	case r.Books == nil:
		return OutcomeAbsent
	case len(r.Books) == 0:
		return OutcomeEmpty
	default:
		return OutcomeBooks
	}
}

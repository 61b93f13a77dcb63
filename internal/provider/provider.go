package provider

import (
	"context"
	"errors"
	"fmt"
)

// NoSummary replaces a summary the provider did not return.
const NoSummary = "No summary available."

// ErrProvider matches every error returned by a Client.
var ErrProvider = errors.New("summary provider request failed")

// Client asks a remote service for the summary of one article. It does not
// validate the URL and never retries: one Fetch is one provider request.
type Client interface {
	Fetch(ctx context.Context, articleURL string) (string, error)
}

// Error keeps the underlying cause of a failed provider request for logging.
type Error struct {
	Op  string
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (URL = %s): %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrProvider, e.Err}
}

func newError(op string, articleURL string, err error) *Error {
	return &Error{Op: op, URL: articleURL, Err: err}
}

package summarizer

import (
	"context"
	"errors"
)

// ErrEmptyOutput is returned when the model answered without any text.
var ErrEmptyOutput = errors.New("output text is missing")

// Input describes the payload for a summary request.
type Input struct {
	// Title is the article headline, if known.
	Title string
	// Text contains the readable article body to summarise.
	Text string
	// SourceURL is optional metadata that helps the model reference the origin.
	SourceURL string
}

// Summarizer produces a single summary for a given input text.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}

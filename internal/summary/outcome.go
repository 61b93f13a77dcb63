package summary

// Status tells how a Summarize call ended.
type Status int

const (
	StatusCached Status = iota + 1
	StatusFresh
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCached:
		return "cached"
	case StatusFresh:
		return "fresh"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrorKind is the only failure detail exposed to callers. Causes are logged.
type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	// ErrorKindInvalidInput means the URL was empty; nothing was requested.
	ErrorKindInvalidInput
	// ErrorKindSummaryFetchFailed covers network, protocol and provider
	// failures. The caller may retry.
	ErrorKindSummaryFetchFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "none"
	case ErrorKindInvalidInput:
		return "invalid input"
	case ErrorKindSummaryFetchFailed:
		return "summary fetch failed"
	default:
		return "unknown"
	}
}

func (k ErrorKind) Error() string {
	return k.String()
}

// Outcome is the result of one Summarize call.
type Outcome struct {
	URL     string
	Status  Status
	Summary string
	Kind    ErrorKind
}

func Cached(articleURL string, summary string) Outcome {
	return Outcome{URL: articleURL, Status: StatusCached, Summary: summary}
}

func Fresh(articleURL string, summary string) Outcome {
	return Outcome{URL: articleURL, Status: StatusFresh, Summary: summary}
}

func Failed(articleURL string, kind ErrorKind) Outcome {
	return Outcome{URL: articleURL, Status: StatusFailed, Kind: kind}
}

func (o Outcome) OK() bool {
	return o.Status == StatusCached || o.Status == StatusFresh
}

// Err returns the outcome's ErrorKind as an error, or nil on success.
func (o Outcome) Err() error {
	if o.Kind == ErrorKindNone {
		return nil
	}

	return o.Kind
}

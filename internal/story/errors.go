package story

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindFetch Kind = iota + 1
	KindExtraction
	KindMissingContent
	KindUnknownStory
	KindDateParse
	KindSink
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch error"
	case KindExtraction:
		return "extraction error"
	case KindMissingContent:
		return "missing content"
	case KindUnknownStory:
		return "unknown story"
	case KindDateParse:
		return "date parse error"
	case KindSink:
		return "output error"
	}
	return "error"
}

// Error is the single error type surfaced by the crawl. URL and Phase are
// attached where the failure happened; callers match on Kind with errors.Is
// against the sentinels below.
type Error struct {
	Kind  Kind
	URL   string
	Phase string
	Err   error
}

var (
	ErrFetch          = &Error{Kind: KindFetch}
	ErrExtraction     = &Error{Kind: KindExtraction}
	ErrMissingContent = &Error{Kind: KindMissingContent}
	ErrUnknownStory   = &Error{Kind: KindUnknownStory}
	ErrDateParse      = &Error{Kind: KindDateParse}
	ErrSink           = &Error{Kind: KindSink}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Phase != "" {
		msg += " (" + e.Phase + ")"
	}
	if e.URL != "" {
		msg += " at " + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// Extraction builds a KindExtraction error for a missing page element.
func Extraction(url, phase, format string, args ...any) error {
	return &Error{Kind: KindExtraction, URL: url, Phase: phase, Err: fmt.Errorf(format, args...)}
}

// WithURL attaches url to err when err is an *Error that has none yet.
func WithURL(err error, url string) error {
	if se, ok := err.(*Error); ok && se.URL == "" {
		cp := *se
		cp.URL = url
		return &cp
	}

	return err
}

// KindOf reports the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}

	return 0
}

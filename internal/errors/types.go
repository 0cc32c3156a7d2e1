package errors

import (
	"errors"
	"fmt"
)

// Kind classifies failures that can happen while turning a résumé into a record
type Kind int

const (
	KindUnknown Kind = iota
	KindUnreadableFile
	KindNoTextExtracted
	KindWriteFailure
)

// String returns a string representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindUnreadableFile:
		return "UNREADABLE_FILE"
	case KindNoTextExtracted:
		return "NO_TEXT_EXTRACTED"
	case KindWriteFailure:
		return "WRITE_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// Error is the typed error returned by the extraction pipeline
type Error struct {
	Kind      Kind
	Op        string
	Path      string
	Diagnosis string
	Err       error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Op)
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Diagnosis != "" {
		msg += " (" + e.Diagnosis + ")"
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Unreadable wraps err as an UnreadableFile error for path
func Unreadable(path string, err error) *Error {
	return New(KindUnreadableFile, "read", path, err)
}

// NoText reports that path produced no extractable text
func NoText(path string) *Error {
	return New(KindNoTextExtracted, "extract", path, errors.New("no text content could be extracted"))
}

// WriteFailure wraps err as a WriteFailure error for path
func WriteFailure(path string, err error) *Error {
	return New(KindWriteFailure, "write", path, err)
}

// WithDiagnosis attaches a human readable diagnosis to the error
func (e *Error) WithDiagnosis(diagnosis string) *Error {
	e.Diagnosis = diagnosis
	return e
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

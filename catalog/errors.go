package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOutputProduced reports that no source contributed any pages, so
	// no catalog was written. This is the only fatal merge outcome.
	ErrNoOutputProduced = errors.New("no pages were merged, catalog not produced")

	// ErrEmptySource marks a source document that parsed cleanly but
	// contains zero pages.
	ErrEmptySource = errors.New("source document has no pages")
)

// ConversionError reports a failed image-to-page conversion. Stage is one of
// "decode", "draw", "finalize" or "undersized".
type ConversionError struct {
	Path  string
	Stage string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("converting %s: %s failed", e.Path, e.Stage)
	}
	return fmt.Sprintf("converting %s: %s failed: %v", e.Path, e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// SourceError reports a source document that could not be read, after any
// sanitize retry the active merge strategy performs.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

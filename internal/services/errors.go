package services

import (
	"errors"
	"fmt"
)

// ErrEmptyContent means the document was technically readable but held
// no usable text. Fatal for the request, never recovered.
var ErrEmptyContent = errors.New("no text could be extracted from the file")

// ErrInvalidContentType means the gatekeeper classified the upload as
// something other than a presentation. Fatal and user-correctable.
var ErrInvalidContentType = errors.New("this document doesn't appear to be a presentation or pitch deck")

// ExtractionError wraps an unreadable or corrupt document. Fatal for
// the request; no fallback path runs.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s document: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// RenderError means a persisted record reaching the renderer was
// incomplete, which indicates an upstream invariant violation.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render report: %s", e.Reason)
}

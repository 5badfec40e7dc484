package parsing

import (
	"errors"
	"fmt"

	"resume-parser/internal/extract"
)

var (
	ErrFileRequired     = errors.New("file is required")
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrInsufficientText = errors.New("extracted text below minimum length")
)

// InputError reports a missing or unsupported upload.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return "input: " + e.Err.Error() }
func (e *InputError) Unwrap() error { return e.Err }

// ExtractionError reports that no usable text came out of the document.
type ExtractionError struct {
	Kind  extract.Kind
	Chars int
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction (%s, %d chars): %v", e.Kind, e.Chars, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ModelTransportError reports a failed call to the model provider.
type ModelTransportError struct {
	Err error
}

func (e *ModelTransportError) Error() string { return "model transport: " + e.Err.Error() }
func (e *ModelTransportError) Unwrap() error { return e.Err }

// ModelOutputError reports model output that is not JSON or does not match
// the profile schema. Raw is the last output received.
type ModelOutputError struct {
	Raw    string
	Detail string
	Err    error
}

func (e *ModelOutputError) Error() string { return "model output: " + e.Detail }
func (e *ModelOutputError) Unwrap() error { return e.Err }

// Reason classifies err for metrics and the run log.
func Reason(err error) string {
	var (
		inErr  *InputError
		exErr  *ExtractionError
		trErr  *ModelTransportError
		outErr *ModelOutputError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &inErr):
		if errors.Is(err, ErrUnsupportedType) {
			return "unsupported_type"
		}
		return "input"
	case errors.As(err, &exErr):
		return "extraction"
	case errors.As(err, &trErr):
		return "model_transport"
	case errors.As(err, &outErr):
		return "model_output"
	default:
		return "internal"
	}
}

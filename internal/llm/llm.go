package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for profile extraction. Implementations
// return the raw text of the first completion, or "{}" when the provider
// produced no content. Any returned error is a transport or provider failure.
type Client interface {
	ExtractProfile(ctx context.Context, input ExtractInput) (string, error)
}

// ExtractInput captures the inputs for one extraction call.
type ExtractInput struct {
	ResumeText string
	// RepairRaw and RepairReason are set when re-prompting after output that
	// failed validation.
	RepairRaw    string
	RepairReason string
}

// Repairing reports whether the input asks the model to fix a previous answer.
func (in ExtractInput) Repairing() bool {
	return in.RepairRaw != ""
}

// EmptyCompletion is returned when the provider answered without content.
const EmptyCompletion = "{}"

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is used in development when no provider key is set.
type PlaceholderClient struct{}

// ExtractProfile returns ErrNotConfigured.
func (PlaceholderClient) ExtractProfile(ctx context.Context, input ExtractInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}

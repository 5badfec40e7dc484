package runs

import "context"

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Repo persists parse runs.
type Repo interface {
	Create(ctx context.Context, run Run) error
	GetByID(ctx context.Context, id string) (Run, error)
	// ListRecent returns runs newest first.
	ListRecent(ctx context.Context, limit int) ([]Run, error)
}

// ClampLimit applies the list default and ceiling.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

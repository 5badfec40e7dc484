package runs

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("not found")

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is the audit record of one parse request. It never holds resume text
// or profile data.
type Run struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"requestId,omitempty"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	Checksum    string    `json:"checksum"`
	Kind        string    `json:"kind"`
	Chars       int       `json:"chars"`
	Stage       string    `json:"stage"`
	Status      string    `json:"status"`
	ErrorKind   string    `json:"errorKind,omitempty"`
	ErrorDetail string    `json:"errorDetail,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model,omitempty"`
	ArchiveKey  string    `json:"archiveKey,omitempty"`
	DurationMs  int64     `json:"durationMs"`
	CreatedAt   time.Time `json:"createdAt"`
}

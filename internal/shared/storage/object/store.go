package object

import (
	"context"
	"fmt"
	"io"
	"path"

	"resume-parser/internal/shared/util"
)

// ObjectStore defines the contract for saving and retrieving binary objects
// under caller-chosen keys.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// RunKey returns the archive key for a file that belongs to a parse run,
// e.g. runs/<runID>/resume.pdf.
func RunKey(runID, fileName string) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}
	return path.Join("runs", runID, name), nil
}

package parsing

import (
	"bytes"
	"context"
	"strings"

	"resume-parser/internal/shared/storage/object"
)

const extractedTextSuffix = ".extracted.txt"

// Archiver keeps a copy of each upload and its extracted text under the run id.
type Archiver struct {
	Store object.ObjectStore
}

// Archive stores the upload and, when non-empty, the extracted text. It
// returns the key of the upload copy.
func (a *Archiver) Archive(ctx context.Context, runID string, up Upload, text string) (string, error) {
	name := up.FileName
	if strings.TrimSpace(name) == "" {
		name = "upload"
	}
	key, err := object.RunKey(runID, name)
	if err != nil {
		return "", err
	}
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := a.Store.Put(ctx, key, contentType, bytes.NewReader(up.Data)); err != nil {
		return "", err
	}
	if text != "" {
		if _, err := a.Store.Put(ctx, key+extractedTextSuffix, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
			return key, err
		}
	}
	return key, nil
}

package runs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const runColumns = `id, request_id, file_name, content_type, size_bytes, checksum, kind, chars, stage, status,
       error_kind, error_detail, provider, model, archive_key, duration_ms, created_at`

// Create inserts a run.
func (r *PGRepo) Create(ctx context.Context, run Run) error {
	const query = `
INSERT INTO parse_runs (
    id,
    request_id,
    file_name,
    content_type,
    size_bytes,
    checksum,
    kind,
    chars,
    stage,
    status,
    error_kind,
    error_detail,
    provider,
    model,
    archive_key,
    duration_ms,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		run.ID,
		run.RequestID,
		run.FileName,
		run.ContentType,
		run.SizeBytes,
		run.Checksum,
		run.Kind,
		run.Chars,
		run.Stage,
		run.Status,
		nullString(run.ErrorKind),
		nullString(run.ErrorDetail),
		run.Provider,
		run.Model,
		nullString(run.ArchiveKey),
		run.DurationMs,
		run.CreatedAt,
	)
	return err
}

// GetByID returns a run by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Run, error) {
	query := `
SELECT ` + runColumns + `
FROM parse_runs
WHERE id = $1
LIMIT 1`
	run, err := scanRun(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	return run, nil
}

// ListRecent returns up to limit runs, newest first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	query := `
SELECT ` + runColumns + `
FROM parse_runs
ORDER BY created_at DESC, id DESC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var errorKind, errorDetail, archiveKey sql.NullString
	err := row.Scan(
		&run.ID,
		&run.RequestID,
		&run.FileName,
		&run.ContentType,
		&run.SizeBytes,
		&run.Checksum,
		&run.Kind,
		&run.Chars,
		&run.Stage,
		&run.Status,
		&errorKind,
		&errorDetail,
		&run.Provider,
		&run.Model,
		&archiveKey,
		&run.DurationMs,
		&run.CreatedAt,
	)
	if err != nil {
		return Run{}, err
	}
	run.ErrorKind = errorKind.String
	run.ErrorDetail = errorDetail.String
	run.ArchiveKey = archiveKey.String
	return run, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

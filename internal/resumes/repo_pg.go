package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	data, design, err := encodeResume(resume)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO resumes (
    id, title, template_id, data, design, color, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.Title,
		resume.Data.TemplateID,
		data,
		design,
		resume.Color,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	const query = `
SELECT id, title, data, design, color, created_at, updated_at
FROM resumes
WHERE id = $1
LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// List returns resumes most recently updated first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
SELECT id, title, data, design, color, created_at, updated_at
FROM resumes
ORDER BY updated_at DESC, id
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	data, design, err := encodeResume(resume)
	if err != nil {
		return err
	}
	const query = `
UPDATE resumes
SET title = $2, template_id = $3, data = $4, design = $5, color = $6, updated_at = $7
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.Title,
		resume.Data.TemplateID,
		data,
		design,
		resume.Color,
		resume.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *PGRepo) Delete(ctx context.Context, resumeID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, resumeID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *PGRepo) RecordExport(ctx context.Context, rec ExportRecord) error {
	const query = `
INSERT INTO resume_exports (
    id, resume_id, format, file_name, storage_key, size_bytes, digest, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.ResumeID,
		rec.Format,
		rec.FileName,
		rec.StorageKey,
		rec.SizeBytes,
		rec.Digest,
		rec.CreatedAt,
	)
	return err
}

// ListExports returns exports newest first.
func (r *PGRepo) ListExports(ctx context.Context, resumeID string) ([]ExportRecord, error) {
	const query = `
SELECT id, resume_id, format, file_name, storage_key, size_bytes, digest, created_at
FROM resume_exports
WHERE resume_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ExportRecord{}
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.ResumeID,
			&rec.Format,
			&rec.FileName,
			&rec.StorageKey,
			&rec.SizeBytes,
			&rec.Digest,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		resume    Resume
		dataRaw   []byte
		designRaw []byte
	)
	if err := row.Scan(
		&resume.ID,
		&resume.Title,
		&dataRaw,
		&designRaw,
		&resume.Color,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	resume.Data, resume.Design = decodeStored(resume.ID, dataRaw, designRaw)
	return resume, nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)

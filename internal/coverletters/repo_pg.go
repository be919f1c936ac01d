package coverletters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

const letterColumns = `id, user_id, content, job_title, company_name, job_description, status, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, l CoverLetter) (CoverLetter, error) {
	query := `
INSERT INTO cover_letters (id, user_id, content, job_title, company_name, job_description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
RETURNING ` + letterColumns
	return scanLetter(r.DB.QueryRowContext(ctx, query,
		l.ID,
		l.UserID,
		l.Content,
		l.JobTitle,
		l.CompanyName,
		l.JobDescription,
		string(l.Status),
	))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]CoverLetter, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+letterColumns+` FROM cover_letters WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cover letters: %w", err)
	}
	defer rows.Close()

	out := make([]CoverLetter, 0)
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, userID, id string) (CoverLetter, error) {
	l, err := scanLetter(r.DB.QueryRowContext(ctx, `SELECT `+letterColumns+` FROM cover_letters WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoverLetter{}, ErrNotFound
		}
		return CoverLetter{}, err
	}
	return l, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cover_letters WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete cover letter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, userID, id string, status Status) (CoverLetter, error) {
	query := `UPDATE cover_letters SET status = $3, updated_at = now() WHERE id = $1 AND user_id = $2 RETURNING ` + letterColumns
	l, err := scanLetter(r.DB.QueryRowContext(ctx, query, id, userID, string(status)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoverLetter{}, ErrNotFound
		}
		return CoverLetter{}, err
	}
	return l, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLetter(row scanner) (CoverLetter, error) {
	var l CoverLetter
	var status string
	if err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.Content,
		&l.JobTitle,
		&l.CompanyName,
		&l.JobDescription,
		&status,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return CoverLetter{}, err
	}
	l.Status = Status(status)
	return l, nil
}

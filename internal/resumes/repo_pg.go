package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, content, ats_score, feedback, source_file_key, created_at, updated_at`

func (r *PGRepo) Upsert(ctx context.Context, resume Resume) (Resume, error) {
	raw, err := marshalFeedback(resume.Feedback)
	if err != nil {
		return Resume{}, err
	}
	query := `
INSERT INTO resumes (id, user_id, content, ats_score, feedback, source_file_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  content = EXCLUDED.content,
  ats_score = EXCLUDED.ats_score,
  feedback = EXCLUDED.feedback,
  source_file_key = COALESCE(NULLIF(EXCLUDED.source_file_key, ''), resumes.source_file_key),
  updated_at = now()
RETURNING ` + resumeColumns
	return scanResume(r.DB.QueryRowContext(ctx, query, resume.ID, resume.UserID, resume.Content, resume.ATSScore, raw, resume.SourceFileKey))
}

func (r *PGRepo) UpsertContent(ctx context.Context, resume Resume) (Resume, error) {
	raw, err := marshalFeedback(resume.Feedback)
	if err != nil {
		return Resume{}, err
	}
	query := `
INSERT INTO resumes (id, user_id, content, ats_score, feedback, source_file_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  content = EXCLUDED.content,
  updated_at = now()
RETURNING ` + resumeColumns
	return scanResume(r.DB.QueryRowContext(ctx, query, resume.ID, resume.UserID, resume.Content, resume.ATSScore, raw, resume.SourceFileKey))
}

func marshalFeedback(feedback []string) ([]byte, error) {
	if feedback == nil {
		feedback = []string{}
	}
	raw, err := json.Marshal(feedback)
	if err != nil {
		return nil, fmt.Errorf("marshal feedback: %w", err)
	}
	return raw, nil
}

func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (Resume, error) {
	resume, err := scanResume(r.DB.QueryRowContext(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 LIMIT 1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

func scanResume(row *sql.Row) (Resume, error) {
	var resume Resume
	var feedback []byte
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Content,
		&resume.ATSScore,
		&feedback,
		&resume.SourceFileKey,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	if len(feedback) > 0 {
		if err := json.Unmarshal(feedback, &resume.Feedback); err != nil {
			return Resume{}, fmt.Errorf("decode feedback: %w", err)
		}
	}
	return resume, nil
}

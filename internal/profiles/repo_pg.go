package profiles

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

const profileColumns = `id, user_id, name, image_url, industry, skills, experience, bio, created_at, updated_at`

func (r *PGRepo) Upsert(ctx context.Context, p Profile) (Profile, error) {
	skills, err := json.Marshal(nonNil(p.Skills))
	if err != nil {
		return Profile{}, fmt.Errorf("marshal skills: %w", err)
	}
	query := `
INSERT INTO profiles (id, user_id, name, image_url, industry, skills, experience, bio, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  name = EXCLUDED.name,
  image_url = EXCLUDED.image_url,
  industry = EXCLUDED.industry,
  skills = EXCLUDED.skills,
  experience = EXCLUDED.experience,
  bio = EXCLUDED.bio,
  updated_at = now()
RETURNING ` + profileColumns
	row := r.DB.QueryRowContext(ctx, query,
		p.ID,
		p.UserID,
		p.Name,
		p.ImageURL,
		p.Industry,
		skills,
		p.Experience,
		p.Bio,
	)
	return scanProfile(row)
}

func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1 LIMIT 1`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func scanProfile(row *sql.Row) (Profile, error) {
	var p Profile
	var skills []byte
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.ImageURL,
		&p.Industry,
		&skills,
		&p.Experience,
		&p.Bio,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return Profile{}, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &p.Skills); err != nil {
			return Profile{}, fmt.Errorf("decode skills: %w", err)
		}
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

const assessmentColumns = `id, user_id, quiz_score, questions, category, improvement_tip, created_at`

func (r *PGRepo) Create(ctx context.Context, a Assessment) (Assessment, error) {
	questions := a.Questions
	if questions == nil {
		questions = []QuestionResult{}
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		return Assessment{}, fmt.Errorf("marshal questions: %w", err)
	}
	var tip sql.NullString
	if a.ImprovementTip != nil {
		tip = sql.NullString{String: *a.ImprovementTip, Valid: true}
	}
	query := `
INSERT INTO assessments (id, user_id, quiz_score, questions, category, improvement_tip, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
RETURNING ` + assessmentColumns
	return scanAssessment(r.DB.QueryRowContext(ctx, query, a.ID, a.UserID, a.QuizScore, raw, string(a.Category), tip))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Assessment, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+assessmentColumns+` FROM assessments WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	out := make([]Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row scanner) (Assessment, error) {
	var a Assessment
	var questions []byte
	var category string
	var tip sql.NullString
	if err := row.Scan(&a.ID, &a.UserID, &a.QuizScore, &questions, &category, &tip, &a.CreatedAt); err != nil {
		return Assessment{}, err
	}
	a.Category = Category(category)
	if tip.Valid {
		a.ImprovementTip = &tip.String
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &a.Questions); err != nil {
			return Assessment{}, fmt.Errorf("decode questions: %w", err)
		}
	}
	return a, nil
}

package insights

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const insightColumns = `id, industry, salary_ranges, growth_rate, demand_level, market_outlook, top_skills, key_trends, recommended_skills, updated_at, next_update`

func (r *PGRepo) FindFresh(ctx context.Context, industry string, now time.Time) (Insight, error) {
	return r.getOne(ctx, `SELECT `+insightColumns+` FROM industry_insights WHERE industry = $1 AND next_update > $2 LIMIT 1`, industry, now)
}

func (r *PGRepo) Get(ctx context.Context, industry string) (Insight, error) {
	return r.getOne(ctx, `SELECT `+insightColumns+` FROM industry_insights WHERE industry = $1 LIMIT 1`, industry)
}

func (r *PGRepo) Upsert(ctx context.Context, in Insight) (Insight, error) {
	salaries, err := json.Marshal(nonNilSalaries(in.SalaryRanges))
	if err != nil {
		return Insight{}, fmt.Errorf("marshal salary ranges: %w", err)
	}
	topSkills, err := marshalStrings(in.TopSkills)
	if err != nil {
		return Insight{}, err
	}
	trends, err := marshalStrings(in.KeyTrends)
	if err != nil {
		return Insight{}, err
	}
	recommended, err := marshalStrings(in.RecommendedSkills)
	if err != nil {
		return Insight{}, err
	}
	query := `
INSERT INTO industry_insights (id, industry, salary_ranges, growth_rate, demand_level, market_outlook, top_skills, key_trends, recommended_skills, updated_at, next_update)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (industry) DO UPDATE SET
  salary_ranges = EXCLUDED.salary_ranges,
  growth_rate = EXCLUDED.growth_rate,
  demand_level = EXCLUDED.demand_level,
  market_outlook = EXCLUDED.market_outlook,
  top_skills = EXCLUDED.top_skills,
  key_trends = EXCLUDED.key_trends,
  recommended_skills = EXCLUDED.recommended_skills,
  updated_at = EXCLUDED.updated_at,
  next_update = EXCLUDED.next_update
RETURNING ` + insightColumns
	row := r.DB.QueryRowContext(ctx, query,
		in.ID,
		in.Industry,
		salaries,
		in.GrowthRate,
		in.DemandLevel,
		in.MarketOutlook,
		topSkills,
		trends,
		recommended,
		in.UpdatedAt,
		in.NextUpdate,
	)
	return scanInsight(row)
}

func (r *PGRepo) ListIndustries(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT DISTINCT industry FROM industry_insights ORDER BY industry`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, err
		}
		out = append(out, industry)
	}
	return out, rows.Err()
}

func (r *PGRepo) getOne(ctx context.Context, query string, args ...any) (Insight, error) {
	in, err := scanInsight(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Insight{}, ErrNotFound
		}
		return Insight{}, err
	}
	return in, nil
}

func scanInsight(row *sql.Row) (Insight, error) {
	var in Insight
	var salaries, topSkills, trends, recommended []byte
	if err := row.Scan(
		&in.ID,
		&in.Industry,
		&salaries,
		&in.GrowthRate,
		&in.DemandLevel,
		&in.MarketOutlook,
		&topSkills,
		&trends,
		&recommended,
		&in.UpdatedAt,
		&in.NextUpdate,
	); err != nil {
		return Insight{}, err
	}
	for _, col := range []struct {
		raw []byte
		out any
	}{
		{salaries, &in.SalaryRanges},
		{topSkills, &in.TopSkills},
		{trends, &in.KeyTrends},
		{recommended, &in.RecommendedSkills},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.out); err != nil {
			return Insight{}, fmt.Errorf("decode insight column: %w", err)
		}
	}
	return in, nil
}

func marshalStrings(s []string) ([]byte, error) {
	if s == nil {
		s = []string{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal list: %w", err)
	}
	return b, nil
}

func nonNilSalaries(s []SalaryRange) []SalaryRange {
	if s == nil {
		return []SalaryRange{}
	}
	return s
}

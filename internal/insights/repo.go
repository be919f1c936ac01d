package insights

import (
	"context"
	"time"
)

type Repo interface {
	// FindFresh returns the snapshot for industry only if NextUpdate is after now.
	FindFresh(ctx context.Context, industry string, now time.Time) (Insight, error)
	Get(ctx context.Context, industry string) (Insight, error)
	// Upsert writes the snapshot keyed by industry. Last write wins.
	Upsert(ctx context.Context, insight Insight) (Insight, error)
	ListIndustries(ctx context.Context) ([]string, error)
}

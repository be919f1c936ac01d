package insights

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	insights map[string]Insight
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{insights: make(map[string]Insight)}
}

func (r *MemoryRepo) FindFresh(ctx context.Context, industry string, now time.Time) (Insight, error) {
	in, err := r.Get(ctx, industry)
	if err != nil {
		return Insight{}, err
	}
	if !in.Fresh(now) {
		return Insight{}, ErrNotFound
	}
	return in, nil
}

func (r *MemoryRepo) Get(ctx context.Context, industry string) (Insight, error) {
	if err := ctx.Err(); err != nil {
		return Insight{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	in, ok := r.insights[industry]
	if !ok {
		return Insight{}, ErrNotFound
	}
	return in, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, in Insight) (Insight, error) {
	if err := ctx.Err(); err != nil {
		return Insight{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.insights[in.Industry]; ok {
		in.ID = existing.ID
	}
	r.insights[in.Industry] = in
	return in, nil
}

func (r *MemoryRepo) ListIndustries(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.insights))
	for industry := range r.insights {
		out = append(out, industry)
	}
	sort.Strings(out)
	return out, nil
}

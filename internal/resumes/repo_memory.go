package resumes

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, resume Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.resumes[resume.UserID]; ok {
		resume.ID = existing.ID
		resume.CreatedAt = existing.CreatedAt
		if resume.SourceFileKey == "" {
			resume.SourceFileKey = existing.SourceFileKey
		}
	} else {
		resume.CreatedAt = now
	}
	resume.UpdatedAt = now
	resume.Feedback = append(make([]string, 0, len(resume.Feedback)), resume.Feedback...)
	r.resumes[resume.UserID] = resume
	return resume, nil
}

func (r *MemoryRepo) UpsertContent(ctx context.Context, resume Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.resumes[resume.UserID]; ok {
		existing.Content = resume.Content
		existing.UpdatedAt = now
		r.resumes[resume.UserID] = existing
		return existing, nil
	}
	resume.CreatedAt = now
	resume.UpdatedAt = now
	resume.Feedback = append(make([]string, 0, len(resume.Feedback)), resume.Feedback...)
	r.resumes[resume.UserID] = resume
	return resume, nil
}

func (r *MemoryRepo) GetByUserID(ctx context.Context, userID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[userID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// Count reports how many resumes are stored.
func (r *MemoryRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resumes)
}

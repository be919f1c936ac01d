package assessments

import "context"

// Repo appends assessments and lists them oldest first.
type Repo interface {
	Create(ctx context.Context, a Assessment) (Assessment, error)
	ListByUser(ctx context.Context, userID string) ([]Assessment, error)
}

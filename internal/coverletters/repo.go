package coverletters

import "context"

// Repo scopes every lookup by owner.
type Repo interface {
	Create(ctx context.Context, letter CoverLetter) (CoverLetter, error)
	ListByUser(ctx context.Context, userID string) ([]CoverLetter, error)
	Get(ctx context.Context, userID, id string) (CoverLetter, error)
	Delete(ctx context.Context, userID, id string) error
	UpdateStatus(ctx context.Context, userID, id string, status Status) (CoverLetter, error)
}

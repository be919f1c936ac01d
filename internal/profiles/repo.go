package profiles

import "context"

type Repo interface {
	// Upsert writes the profile keyed by user id and returns the stored row.
	Upsert(ctx context.Context, profile Profile) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
}

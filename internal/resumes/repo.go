package resumes

import "context"

type Repo interface {
	// Upsert writes the single resume owned by resume.UserID and returns the stored row.
	// An empty SourceFileKey keeps the key already stored.
	Upsert(ctx context.Context, resume Resume) (Resume, error)
	// UpsertContent inserts resume when the user has none, otherwise it only
	// replaces the content and leaves score, feedback and source key alone.
	UpsertContent(ctx context.Context, resume Resume) (Resume, error)
	GetByUserID(ctx context.Context, userID string) (Resume, error)
}

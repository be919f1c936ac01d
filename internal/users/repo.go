package users

import "context"

type Repo interface {
	// Create inserts a new user. Unique conflicts surface as ErrUsernameTaken or ErrEmailTaken.
	Create(ctx context.Context, user User) error
	// UpsertByEmail creates or refreshes an OAuth user keyed by email and returns the stored row.
	UpsertByEmail(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

package coverletters

import "errors"

var (
	// ErrNotFound covers malformed ids, missing letters and letters owned by another user.
	ErrNotFound       = errors.New("cover letter not found")
	ErrProfileMissing = errors.New("profile not found")
	ErrUpstream       = errors.New("cover letter generation failed")
)

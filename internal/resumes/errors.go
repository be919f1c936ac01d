package resumes

import "errors"

var (
	ErrNotFound = errors.New("resume not found")
	// ErrProfileMissing means the caller has not completed onboarding.
	ErrProfileMissing = errors.New("user doesn't exist")
	ErrNoIndustry     = errors.New("profile industry not set")
	ErrUpstream       = errors.New("resume generation failed")
)

package insights

import "errors"

var (
	ErrNotFound = errors.New("insight not found")
	// ErrNoIndustry means the caller has no profile or has not picked an industry.
	ErrNoIndustry = errors.New("profile industry not set")
	// ErrUpstream wraps provider failures and unusable provider output.
	ErrUpstream = errors.New("insight generation failed")
)

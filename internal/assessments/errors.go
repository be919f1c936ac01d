package assessments

import "errors"

var (
	ErrNoIndustry = errors.New("profile industry not set")
	ErrUpstream   = errors.New("quiz generation failed")
)

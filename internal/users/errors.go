package users

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrMissingFields      = errors.New("all fields are required")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect password")
)

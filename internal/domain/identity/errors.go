package identity

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidEmail    = errors.New("invalid email address")
)

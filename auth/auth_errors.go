package auth

import "errors"

var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidState     = errors.New("invalid or expired state")
	ErrSessionNotReady  = errors.New("session not found or expired")
)

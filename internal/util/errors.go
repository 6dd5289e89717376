package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrHintLimitReached   = errors.New("hint limit reached for this step")
	ErrActivityNotFound   = errors.New("activity not found")
)

package services

import "errors"

// Service-level errors that handlers translate into HTTP status codes.
var (
	ErrEmailTaken      = errors.New("email already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrContactExists   = errors.New("contact already exists")
	ErrSelfContact     = errors.New("cannot add yourself as a contact")
	ErrEventNotFound   = errors.New("panic event not found")
	ErrInvalidToken    = errors.New("invalid token")
)

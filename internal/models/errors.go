package models

import "errors"

// Domain errors surfaced to handlers, which map them to HTTP statuses.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrValidation    = errors.New("validation failed")
	ErrGoalInactive  = errors.New("goal is not active")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

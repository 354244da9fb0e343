package service

import (
	"errors"
	"fmt"
)

// Domain errors. The HTTP layer maps them with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound covers both absent and foreign-owned resources.
	ErrNotFound      = errors.New("not found")
	ErrHabitNotFound = fmt.Errorf("habit %w", ErrNotFound)
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
)

package entities

import "errors"

var (
	// ErrUserNotFound is returned when a user lookup finds nothing
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when creating a user with a taken email
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when email/password verification fails
	ErrInvalidCredentials = errors.New("invalid credentials")
)

package services

import "errors"

var (
	// ErrInvalidInput is returned when a required field is missing.
	ErrInvalidInput = errors.New("invalid input")
	// ErrWeakPassword is returned when a password is shorter than MinPasswordLength.
	ErrWeakPassword = errors.New("weak password")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email taken")
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password. Both cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when a user id does not resolve.
	ErrNotFound = errors.New("user not found")
)

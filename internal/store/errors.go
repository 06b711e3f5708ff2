package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when inserting a record whose email is
// already present.
var ErrDuplicateEmail = errors.New("duplicate email")

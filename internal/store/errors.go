package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrLoginExists is returned when registering a login name that is
// already taken.
var ErrLoginExists = errors.New("login already exists")

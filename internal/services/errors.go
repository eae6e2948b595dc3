package services

import "errors"

var (
	// ErrLoginTaken is returned by Register when the login is in use.
	ErrLoginTaken = errors.New("login already in use")

	// ErrInvalidCredentials is the single failure returned by
	// Authenticate. It never reveals whether the login existed.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrNotAuthenticated is returned when an operation requires an
	// acting identity and none was supplied.
	ErrNotAuthenticated = errors.New("no authenticated user")

	// ErrInvalidDueDate is returned when a due date does not match the
	// DD/MM/YYYY format.
	ErrInvalidDueDate = errors.New("invalid due date, expected DD/MM/YYYY")

	// ErrMissingField is returned when a required field is empty.
	ErrMissingField = errors.New("missing required field")

	// ErrForbidden is returned in ownership-enforcing mode when the
	// actor tries to mutate a task owned by someone else.
	ErrForbidden = errors.New("task belongs to another user")
)

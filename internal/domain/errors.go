package domain

import "errors"

var (
	// ErrEmptyCatalog is returned when random selection runs against a
	// catalog with no quizzes. Unreachable with the fixed seed data, but
	// guarded explicitly rather than letting selection panic.
	ErrEmptyCatalog = errors.New("quiz catalog is empty")
	// ErrQuizNotFound indicates the submitted quiz id does not resolve.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrMalformedSubmission indicates the answers do not line up with the
	// quiz questions (wrong length or invalid payload).
	ErrMalformedSubmission = errors.New("malformed quiz submission")
	// ErrUserNotFound is returned when a user id or username does not
	// resolve to an account.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned on registration with an existing name.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrChallengeNotFound indicates an unknown challenge id.
	ErrChallengeNotFound = errors.New("challenge not found")
	// ErrChallengeCompleted is returned when a user completes the same
	// challenge twice.
	ErrChallengeCompleted = errors.New("challenge already completed")
)

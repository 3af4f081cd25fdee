package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotParticipant  = errors.New("user is not a participant of this session")
	ErrSessionClosed   = errors.New("session is closed")
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrInvalidToken    = errors.New("invalid token")

	// ErrMatchingRunInProgress is returned when a matching pass is triggered
	// while another run holds the run lock. Runs must be serialized: two
	// concurrent passes would read the same unmatched pool and double-allocate.
	ErrMatchingRunInProgress = errors.New("matching run already in progress")
)

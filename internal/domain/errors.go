package domain

import "errors"

var (
	// ErrFormat reports malformed date or time text.
	ErrFormat = errors.New("malformed date/time")
	// ErrLookup reports that the workspace has no matching collection or record.
	ErrLookup = errors.New("record not found")

	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidInput    = errors.New("invalid input")

	// ErrDuplicateRequest reports a reused idempotency key.
	ErrDuplicateRequest = errors.New("duplicate request")
)

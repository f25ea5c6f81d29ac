package queuesvc

import "errors"

// Error texts double as wire messages, so they keep their client-facing
// capitalization.
var (
	ErrNameEmpty      = errors.New("Queue name cannot be empty")
	ErrNameTooLong    = errors.New("Queue name is too long")
	ErrNotFound       = errors.New("Queue item not found")
	ErrNotFirstInLine = errors.New("Timer can only be started for the first item in queue")
	ErrNoActiveTimer  = errors.New("No active timer found for this item")
)

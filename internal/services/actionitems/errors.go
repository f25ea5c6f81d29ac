package actionsvc

import "errors"

// Error texts double as wire messages, so they keep their client-facing
// capitalization.
var (
	ErrTitleEmpty         = errors.New("Action item title cannot be empty")
	ErrTitleTooLong       = errors.New("Action item title is too long")
	ErrDescriptionTooLong = errors.New("Action item description is too long")
	ErrNotFound           = errors.New("Action item not found")
	ErrImageTooLarge      = errors.New("Completion image is too large")
	ErrImageNotImage      = errors.New("Completion image must be an image")
)

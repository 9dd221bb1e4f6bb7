package reminder

import "errors"

var (
	ErrEmptyDescription     = errors.New("description is required")
	ErrMultilineDescription = errors.New("description must be a single line")
	ErrIndexOutOfRange      = errors.New("reminder index out of range")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidTime          = errors.New("invalid time")
)

package config

import "errors"

var (
	ErrUnknownBackend     = errors.New("unknown storage backend")
	ErrStoragePathMissing = errors.New("storage path is required")
	ErrEmptyDisplayFormat = errors.New("display date_format and time_format are required")
	ErrInvalidInterval    = errors.New("ticker interval_minutes must be positive")
	ErrInvalidLead        = errors.New("alerts lead_minutes must not be negative")
	ErrInvalidLogLevel    = errors.New("unknown log level")
)

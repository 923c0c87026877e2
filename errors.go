package main

import "errors"

// Error kinds reported by the filter. Callers match them with errors.Is.
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrNotAFile        = errors.New("not a file")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMalformedRead   = errors.New("malformed read")
)

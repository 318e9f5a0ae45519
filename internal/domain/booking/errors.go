package booking

import "errors"

var (
	ErrNotFound      = errors.New("booking not found")
	ErrInvalidTab    = errors.New("invalid booking tab")
	ErrInvalidStatus = errors.New("invalid booking status")
)

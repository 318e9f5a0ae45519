package medcase

import "errors"

var (
	ErrNotFound        = errors.New("case not found")
	ErrInvalidScope    = errors.New("invalid case scope")
	ErrAlreadyClosed   = errors.New("case is already closed")
	ErrTooManyImages   = errors.New("too many images")
	ErrFileTooLarge    = errors.New("image exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("image type is not allowed")
	ErrEmptyFile       = errors.New("image is empty")
)

package product

import "errors"

var (
	ErrNotFound    = errors.New("product not found")
	ErrEmptyUpdate = errors.New("no fields to update")
)

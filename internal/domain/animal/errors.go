package animal

import "errors"

var ErrNotFound = errors.New("animal not found")

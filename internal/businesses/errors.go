package businesses

import "errors"

var (
	ErrNotFound     = errors.New("business not found")
	ErrInvalidInput = errors.New("invalid input")
)

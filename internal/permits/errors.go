package permits

import "errors"

var (
	ErrNotFound       = errors.New("document not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidFileRef = errors.New("invalid source file reference")
)

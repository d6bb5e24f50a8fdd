package sizing

import "errors"

var (
	ErrInvalidField = errors.New("invalid field")
	ErrMissingField = errors.New("missing field")
	ErrNotFinite    = errors.New("value must be a finite number")
	ErrNotInteger   = errors.New("value must be a whole number")
	ErrOutOfRange   = errors.New("value out of range")
	ErrInvalidRange = errors.New("range min must not exceed max")
)

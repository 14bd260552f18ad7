package shared

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrMissingArgument = errors.New("missing required argument")
	ErrInvalidFlag     = errors.New("invalid flag value")
)

package service

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrMissingName     = errors.New("service requires a name")
	ErrInvalidDuration = errors.New("service duration must be a positive number of minutes")
)

package catalog

import "errors"

var (
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidHours    = errors.New("invalid business hours")
	ErrInvalidMode     = errors.New("invalid availability mode")
	ErrInvalidCapacity = errors.New("invalid max capacity")
)

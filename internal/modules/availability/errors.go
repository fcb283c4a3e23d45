package availability

import "errors"

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrInvalidDate   = errors.New("invalid date")
)

package pricing

import "errors"

var (
	ErrUnknownService  = errors.New("unknown service in cart")
	ErrInvalidQuantity = errors.New("negative quantity in cart")
)

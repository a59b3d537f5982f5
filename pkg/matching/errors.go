package matching

import "errors"

var (
	ErrInvalidPrice    = errors.New("order price must be positive")
	ErrInvalidQuantity = errors.New("order quantity must be positive")
)

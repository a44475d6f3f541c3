package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProductPrice means the product has no usable retail price.
	ErrInvalidProductPrice = errors.New("product has no valid retail price")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
)

// BelowMinimumQuantityError is returned when a wholesale-only product is
// requested below its minimum order quantity.
type BelowMinimumQuantityError struct {
	Required  int
	Requested int
}

func (e *BelowMinimumQuantityError) Error() string {
	return fmt.Sprintf("quantity %d is below the wholesale minimum of %d", e.Requested, e.Required)
}

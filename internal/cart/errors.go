package cart

import (
	"errors"
	"fmt"
)

var (
	ErrVariationRequired  = errors.New("a variation must be selected for this product")
	ErrVariationNotFound  = errors.New("variation does not belong to this product")
	ErrProductUnavailable = errors.New("product is not available")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrCartNotFound       = errors.New("cart not found")
	ErrCartBusy           = errors.New("cart is being updated by another request")
)

// InsufficientStockError carries the quantity that can still be ordered.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("requested %d but only %d in stock", e.Requested, e.Available)
}

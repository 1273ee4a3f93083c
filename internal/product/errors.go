package product

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// Invalid wraps ErrInvalidProduct with the offending detail.
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidProduct, reason)
}

// InvalidReason extracts the detail from an error built by Invalid.
func InvalidReason(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidProduct.Error()+": ")
}

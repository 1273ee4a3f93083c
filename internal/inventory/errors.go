package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInvalidAdjustment     = errors.New("invalid stock adjustment")
)

// Invalid wraps ErrInvalidAdjustment with the offending detail.
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidAdjustment, reason)
}

// InvalidReason extracts the detail from an ErrInvalidAdjustment error.
func InvalidReason(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidAdjustment.Error()+": ")
}

package sale

import (
	"errors"
	"fmt"
)

var (
	ErrSaleNotFound   = errors.New("sale not found")
	ErrSaleInProgress = errors.New("sale with this idempotency key is still being processed")
)

// ValidationError reports a malformed sale request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid sale: " + e.Reason
	}
	return fmt.Sprintf("invalid sale: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a line item referencing a product that does not exist.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return "product not found: " + e.ProductID
}

// InsufficientStockError reports a line item asking for more than is on hand.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s: available %d, requested %d", e.ProductName, e.Available, e.Requested)
}

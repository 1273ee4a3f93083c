package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
	ImageURL *string
}

// UpdateProductInput replaces the catalog fields. Stock changes go through inventory.
type UpdateProductInput struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	ImageURL *string
}

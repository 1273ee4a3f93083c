package dto

type SaleItemInput struct {
	ProductID string
	Quantity  int
}

type ProcessSaleInput struct {
	Items         []SaleItemInput
	CustomerName  string
	CustomerPhone string
	PaymentMethod string
	// IdempotencyKey is optional. Without it every call records a new sale.
	IdempotencyKey string
	UserID         string
}

package dto

type LowStockFilters struct {
	Threshold int // products with quantity <= Threshold
	Page      int
	PageSize  int
}

type MovementFilters struct {
	ProductID    string
	MovementType string
	Page         int
	PageSize     int
}

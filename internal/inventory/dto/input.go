package dto

type AdjustInventoryInput struct {
	ProductID      string
	QuantityChange int
	MovementType   string // adjustment (default) or restock
	Reason         string
	ReferenceID    string
	ReferenceType  string // e.g. manual, stock_receipt
	UserID         string
}

// SetStockLevelInput records a physical count.
type SetStockLevelInput struct {
	ProductID string
	Quantity  int
	Reason    string
	UserID    string
}

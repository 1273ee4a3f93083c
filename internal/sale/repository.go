package sale

import (
	"context"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/sale/dto"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Sale, error)
	FindAll(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)

	// RunInTx executes fn inside one store transaction. Returning an error from fn rolls back
	// every write made through tx.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error
}

// TxRepository is the unit of work seen by one sale.
type TxRepository interface {
	FindProductByID(ctx context.Context, id string) (*model.Product, error)

	// DecrementStock lowers the product quantity by amount only if at least amount is on hand,
	// returning the updated product. It returns (nil, nil) when no row qualified: either the
	// product does not exist or its stock is short.
	DecrementStock(ctx context.Context, productID string, amount int) (*model.Product, error)

	LogMovement(ctx context.Context, movement *model.InventoryMovement) error
	InsertSale(ctx context.Context, sale *model.Sale) error
}

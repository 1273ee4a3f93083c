package inventory

import (
	"context"

	"github.com/fekuna/omnipos-retail-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-retail-service/internal/model"
)

type Repository interface {
	// AdjustStockWithMovement applies change only if the result stays non-negative and records the
	// movement in the same transaction. The movement's before/after quantities are filled in.
	AdjustStockWithMovement(ctx context.Context, productID string, change int, movement *model.InventoryMovement) (*model.Product, error)
	// SetStockWithMovement overwrites the on-hand quantity with a physical count.
	SetStockWithMovement(ctx context.Context, productID string, quantity int, movement *model.InventoryMovement) (*model.Product, error)

	FindLowStock(ctx context.Context, filters *dto.LowStockFilters) ([]model.Product, int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}

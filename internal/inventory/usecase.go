package inventory

import (
	"context"

	"github.com/fekuna/omnipos-retail-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-retail-service/internal/model"
)

type UseCase interface {
	AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*model.Product, *model.InventoryMovement, error)
	SetStockLevel(ctx context.Context, input *dto.SetStockLevelInput) (*model.Product, *model.InventoryMovement, error)
	ListLowStock(ctx context.Context, threshold, page, pageSize int) ([]model.Product, int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}

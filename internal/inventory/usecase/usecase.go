package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-retail-service/internal/inventory"
	"github.com/fekuna/omnipos-retail-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/product"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option customizes the inventory use case.
type Option func(*inventoryUseCase)

// WithCatalogSync refreshes the product catalog views after every stock change.
func WithCatalogSync(c product.CatalogSync) Option {
	return func(uc *inventoryUseCase) { uc.catalog = c }
}

type inventoryUseCase struct {
	repo              inventory.Repository
	catalog           product.CatalogSync
	lowStockThreshold int
	logger            logger.ZapLogger
}

// NewInventoryUseCase uses lowStockThreshold when ListLowStock is called without one.
func NewInventoryUseCase(repo inventory.Repository, lowStockThreshold int, log logger.ZapLogger, opts ...Option) inventory.UseCase {
	uc := &inventoryUseCase{
		repo:              repo,
		lowStockThreshold: lowStockThreshold,
		logger:            log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *inventoryUseCase) AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*model.Product, *model.InventoryMovement, error) {
	if input.ProductID == "" {
		return nil, nil, inventory.Invalid("product_id is required")
	}
	if input.QuantityChange == 0 {
		return nil, nil, inventory.Invalid("quantity_change must not be zero")
	}

	movementType := input.MovementType
	switch movementType {
	case "":
		movementType = model.MovementAdjustment
	case model.MovementAdjustment:
	case model.MovementRestock:
		if input.QuantityChange < 0 {
			return nil, nil, inventory.Invalid("restock must add stock")
		}
	default:
		return nil, nil, inventory.Invalid("unsupported movement type " + movementType)
	}

	movement := newMovement(input.ProductID, movementType, input.Reason, input.UserID)
	if input.ReferenceID != "" {
		refID := input.ReferenceID
		movement.ReferenceID = &refID
	}
	if input.ReferenceType != "" {
		refType := input.ReferenceType
		movement.ReferenceType = &refType
	}

	p, err := uc.repo.AdjustStockWithMovement(ctx, input.ProductID, input.QuantityChange, movement)
	if err != nil {
		uc.logFailure("adjust", input.ProductID, err)
		return nil, nil, err
	}

	uc.logger.Info("stock adjusted",
		zap.String("product_id", p.ID),
		zap.String("movement_type", movementType),
		zap.Int("change", input.QuantityChange),
		zap.Int("quantity", p.Quantity),
	)
	uc.refresh(ctx, p.ID)
	return p, movement, nil
}

func (uc *inventoryUseCase) SetStockLevel(ctx context.Context, input *dto.SetStockLevelInput) (*model.Product, *model.InventoryMovement, error) {
	if input.ProductID == "" {
		return nil, nil, inventory.Invalid("product_id is required")
	}
	if input.Quantity < 0 {
		return nil, nil, inventory.Invalid("quantity must not be negative")
	}

	movement := newMovement(input.ProductID, model.MovementCount, input.Reason, input.UserID)
	p, err := uc.repo.SetStockWithMovement(ctx, input.ProductID, input.Quantity, movement)
	if err != nil {
		uc.logFailure("count", input.ProductID, err)
		return nil, nil, err
	}

	uc.logger.Info("stock counted",
		zap.String("product_id", p.ID),
		zap.Int("before", movement.QuantityBefore),
		zap.Int("quantity", p.Quantity),
	)
	uc.refresh(ctx, p.ID)
	return p, movement, nil
}

func (uc *inventoryUseCase) refresh(ctx context.Context, productID string) {
	if uc.catalog != nil {
		uc.catalog.Refresh(ctx, productID)
	}
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, threshold, page, pageSize int) ([]model.Product, int, error) {
	if threshold <= 0 {
		threshold = uc.lowStockThreshold
	}
	return uc.repo.FindLowStock(ctx, &dto.LowStockFilters{
		Threshold: threshold,
		Page:      page,
		PageSize:  pageSize,
	})
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	if filters == nil {
		filters = &dto.MovementFilters{}
	}
	return uc.repo.ListMovements(ctx, filters)
}

func newMovement(productID, movementType, notes, userID string) *model.InventoryMovement {
	var createdBy *string
	if userID != "" && userID != "unknown" {
		createdBy = &userID
	}
	return &model.InventoryMovement{
		ID:           uuid.New().String(),
		ProductID:    productID,
		MovementType: movementType,
		Notes:        notes,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
	}
}

func (uc *inventoryUseCase) logFailure(op, productID string, err error) {
	if errors.Is(err, product.ErrProductNotFound) || errors.Is(err, inventory.ErrInsufficientInventory) {
		uc.logger.Warn("stock "+op+" rejected", zap.String("product_id", productID), zap.Error(err))
		return
	}
	uc.logger.Error("stock "+op+" failed", zap.String("product_id", productID), zap.Error(err))
}

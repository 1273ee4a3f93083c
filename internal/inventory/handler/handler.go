package handler

import (
	"context"
	"errors"

	retailv1 "github.com/fekuna/omnipos-retail-service/api/retail/v1"
	"github.com/fekuna/omnipos-retail-service/internal/auth"
	"github.com/fekuna/omnipos-retail-service/internal/inventory"
	"github.com/fekuna/omnipos-retail-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/product"
	productHandler "github.com/fekuna/omnipos-retail-service/internal/product/handler"
	"github.com/fekuna/omnipos-retail-service/pkg/i18n"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type InventoryHandler struct {
	retailv1.UnimplementedInventoryServiceServer
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) AdjustInventory(ctx context.Context, req *retailv1.AdjustInventoryRequest) (*retailv1.InventoryResponse, error) {
	refType := req.ReferenceType
	if refType == "" {
		refType = "manual"
	}

	input := &dto.AdjustInventoryInput{
		ProductID:      req.ProductID,
		QuantityChange: int(req.QuantityChange),
		MovementType:   req.MovementType,
		Reason:         req.Reason,
		ReferenceID:    req.ReferenceID,
		ReferenceType:  refType,
		UserID:         auth.GetUserID(ctx),
	}

	p, m, err := h.uc.AdjustInventory(ctx, input)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &retailv1.InventoryResponse{
		Product:  productHandler.MapProductToProto(p),
		Movement: mapMovementToProto(m),
	}, nil
}

func (h *InventoryHandler) SetStockLevel(ctx context.Context, req *retailv1.SetStockLevelRequest) (*retailv1.InventoryResponse, error) {
	p, m, err := h.uc.SetStockLevel(ctx, &dto.SetStockLevelInput{
		ProductID: req.ProductID,
		Quantity:  int(req.Quantity),
		Reason:    req.Reason,
		UserID:    auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &retailv1.InventoryResponse{
		Product:  productHandler.MapProductToProto(p),
		Movement: mapMovementToProto(m),
	}, nil
}

func (h *InventoryHandler) ListLowStock(ctx context.Context, req *retailv1.ListLowStockRequest) (*retailv1.ListProductsResponse, error) {
	items, count, err := h.uc.ListLowStock(ctx, int(req.Threshold), int(req.Page), int(req.PageSize))
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return &retailv1.ListProductsResponse{
		Products: productHandler.MapProductsToProto(items),
		Total:    int32(count),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (h *InventoryHandler) ListInventoryMovements(ctx context.Context, req *retailv1.ListInventoryMovementsRequest) (*retailv1.ListInventoryMovementsResponse, error) {
	filters := &dto.MovementFilters{
		ProductID:    req.ProductID,
		MovementType: req.MovementType,
		Page:         int(req.Page),
		PageSize:     int(req.PageSize),
	}

	mvs, count, err := h.uc.ListMovements(ctx, filters)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	protoMovements := make([]*retailv1.InventoryMovement, len(mvs))
	for i := range mvs {
		protoMovements[i] = mapMovementToProto(&mvs[i])
	}

	return &retailv1.ListInventoryMovementsResponse{
		Movements: protoMovements,
		Total:     int32(count),
		Page:      req.Page,
		PageSize:  req.PageSize,
	}, nil
}

func (h *InventoryHandler) toStatus(ctx context.Context, err error) error {
	lang := auth.GetLanguage(ctx)
	switch {
	case errors.Is(err, inventory.ErrInvalidAdjustment):
		return status.Error(codes.InvalidArgument, i18n.T(lang, "InventoryInvalid", map[string]interface{}{"Reason": inventory.InvalidReason(err)}))
	case errors.Is(err, product.ErrProductNotFound):
		return status.Error(codes.NotFound, i18n.T(lang, "ProductNotFound", nil))
	case errors.Is(err, inventory.ErrInsufficientInventory):
		return status.Error(codes.FailedPrecondition, i18n.T(lang, "InventoryInsufficient", nil))
	}
	h.logger.Error("inventory request failed", zap.Error(err))
	return status.Error(codes.Internal, i18n.T(lang, "InternalError", nil))
}

func mapMovementToProto(m *model.InventoryMovement) *retailv1.InventoryMovement {
	if m == nil {
		return nil
	}
	refType := ""
	if m.ReferenceType != nil {
		refType = *m.ReferenceType
	}
	refID := ""
	if m.ReferenceID != nil {
		refID = *m.ReferenceID
	}
	createdBy := ""
	if m.CreatedBy != nil {
		createdBy = *m.CreatedBy
	}

	return &retailv1.InventoryMovement{
		ID:             m.ID,
		ProductID:      m.ProductID,
		MovementType:   m.MovementType,
		QuantityChange: int32(m.QuantityChange),
		QuantityBefore: int32(m.QuantityBefore),
		QuantityAfter:  int32(m.QuantityAfter),
		ReferenceType:  refType,
		ReferenceID:    refID,
		Notes:          m.Notes,
		CreatedBy:      createdBy,
		CreatedAt:      m.CreatedAt,
	}
}

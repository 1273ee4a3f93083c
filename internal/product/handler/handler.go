package handler

import (
	"context"
	"errors"

	retailv1 "github.com/fekuna/omnipos-retail-service/api/retail/v1"
	"github.com/fekuna/omnipos-retail-service/internal/auth"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/product"
	"github.com/fekuna/omnipos-retail-service/internal/product/dto"
	"github.com/fekuna/omnipos-retail-service/pkg/i18n"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type ProductHandler struct {
	retailv1.UnimplementedProductServiceServer
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *retailv1.CreateProductRequest) (*retailv1.ProductResponse, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	p, err := h.uc.CreateProduct(ctx, &dto.CreateProductInput{
		Name:     req.Name,
		Quantity: int(req.Quantity),
		Price:    price,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	h.logger.Info("product created", zap.String("product_id", p.ID), zap.String("user_id", auth.GetUserID(ctx)))
	return &retailv1.ProductResponse{Product: MapProductToProto(p)}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *retailv1.GetProductRequest) (*retailv1.ProductResponse, error) {
	p, err := h.uc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &retailv1.ProductResponse{Product: MapProductToProto(p)}, nil
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *retailv1.ListProductsRequest) (*retailv1.ListProductsResponse, error) {
	filters := &dto.ProductFilters{
		SearchQuery: req.Query,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
		Page:        int(req.Page),
		PageSize:    int(req.PageSize),
	}

	products, count, err := h.uc.ListProducts(ctx, filters)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return &retailv1.ListProductsResponse{
		Products: MapProductsToProto(products),
		Total:    int32(count),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *retailv1.UpdateProductRequest) (*retailv1.ProductResponse, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	p, err := h.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:       req.ID,
		Name:     req.Name,
		Price:    price,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &retailv1.ProductResponse{Product: MapProductToProto(p)}, nil
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *retailv1.DeleteProductRequest) (*emptypb.Empty, error) {
	if err := h.uc.DeleteProduct(ctx, req.ID); err != nil {
		return nil, h.toStatus(ctx, err)
	}
	h.logger.Info("product deleted", zap.String("product_id", req.ID), zap.String("user_id", auth.GetUserID(ctx)))
	return &emptypb.Empty{}, nil
}

// parsePrice accepts decimal strings. An empty price is zero.
func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, product.Invalid("price is not a number")
	}
	return d, nil
}

func (h *ProductHandler) toStatus(ctx context.Context, err error) error {
	lang := auth.GetLanguage(ctx)
	switch {
	case errors.Is(err, product.ErrInvalidProduct):
		return status.Error(codes.InvalidArgument, i18n.T(lang, "ProductInvalid", map[string]interface{}{"Reason": product.InvalidReason(err)}))
	case errors.Is(err, product.ErrProductNotFound):
		return status.Error(codes.NotFound, i18n.T(lang, "ProductNotFound", nil))
	}
	h.logger.Error("product request failed", zap.Error(err))
	return status.Error(codes.Internal, i18n.T(lang, "InternalError", nil))
}

func MapProductToProto(p *model.Product) *retailv1.Product {
	if p == nil {
		return nil
	}
	out := &retailv1.Product{
		ID:        p.ID,
		Name:      p.Name,
		Quantity:  int32(p.Quantity),
		Price:     p.Price.StringFixed(2),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.ImageURL != nil {
		out.ImageURL = *p.ImageURL
	}
	return out
}

func MapProductsToProto(products []model.Product) []*retailv1.Product {
	out := make([]*retailv1.Product, len(products))
	for i := range products {
		out[i] = MapProductToProto(&products[i])
	}
	return out
}

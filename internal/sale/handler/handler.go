package handler

import (
	"context"
	"errors"
	"strconv"

	retailv1 "github.com/fekuna/omnipos-retail-service/api/retail/v1"
	"github.com/fekuna/omnipos-retail-service/internal/auth"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/sale"
	"github.com/fekuna/omnipos-retail-service/internal/sale/dto"
	"github.com/fekuna/omnipos-retail-service/pkg/i18n"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "retail.omnipos"

// Reasons carried in google.rpc.ErrorInfo so clients can branch without parsing messages.
const (
	ReasonInvalidRequest    = "INVALID_REQUEST"
	ReasonProductNotFound   = "PRODUCT_NOT_FOUND"
	ReasonInsufficientStock = "INSUFFICIENT_STOCK"
	ReasonSaleInProgress    = "SALE_IN_PROGRESS"
	ReasonSaleNotFound      = "SALE_NOT_FOUND"
)

type SaleHandler struct {
	retailv1.UnimplementedSaleServiceServer
	uc     sale.UseCase
	logger logger.ZapLogger
}

func NewSaleHandler(uc sale.UseCase, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SaleHandler) ProcessSale(ctx context.Context, req *retailv1.ProcessSaleRequest) (*retailv1.SaleResponse, error) {
	items := make([]dto.SaleItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		if it == nil {
			continue
		}
		items = append(items, dto.SaleItemInput{ProductID: it.ProductID, Quantity: int(it.Quantity)})
	}

	key := req.IdempotencyKey
	if key == "" {
		key = auth.GetIdempotencyKey(ctx)
	}

	input := &dto.ProcessSaleInput{
		Items:          items,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: key,
		UserID:         auth.GetUserID(ctx),
	}

	s, err := h.uc.ProcessSale(ctx, input)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &retailv1.SaleResponse{Sale: mapSaleToProto(s)}, nil
}

func (h *SaleHandler) GetSale(ctx context.Context, req *retailv1.GetSaleRequest) (*retailv1.SaleResponse, error) {
	s, err := h.uc.GetSale(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &retailv1.SaleResponse{Sale: mapSaleToProto(s)}, nil
}

func (h *SaleHandler) ListSales(ctx context.Context, req *retailv1.ListSalesRequest) (*retailv1.ListSalesResponse, error) {
	filters := &dto.SaleFilters{
		From:     req.From,
		To:       req.To,
		Page:     int(req.Page),
		PageSize: int(req.PageSize),
	}

	sales, count, err := h.uc.ListSales(ctx, filters)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	protos := make([]*retailv1.Sale, len(sales))
	for i := range sales {
		protos[i] = mapSaleToProto(&sales[i])
	}

	return &retailv1.ListSalesResponse{
		Sales:    protos,
		Total:    int32(count),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// toStatus maps use case errors to gRPC codes with a localized message and an ErrorInfo detail.
func (h *SaleHandler) toStatus(ctx context.Context, err error) error {
	lang := auth.GetLanguage(ctx)

	var (
		invalid  *sale.ValidationError
		notFound *sale.NotFoundError
		short    *sale.InsufficientStockError
	)
	switch {
	case errors.As(err, &invalid):
		reason := invalid.Reason
		if invalid.Field != "" {
			reason = invalid.Field + ": " + invalid.Reason
		}
		return withInfo(codes.InvalidArgument,
			i18n.T(lang, "SaleInvalidRequest", map[string]interface{}{"Reason": reason}),
			ReasonInvalidRequest, map[string]string{"field": invalid.Field})

	case errors.As(err, &notFound):
		return withInfo(codes.NotFound,
			i18n.T(lang, "SaleProductNotFound", map[string]interface{}{"ProductID": notFound.ProductID}),
			ReasonProductNotFound, map[string]string{"product_id": notFound.ProductID})

	case errors.As(err, &short):
		return withInfo(codes.FailedPrecondition,
			i18n.T(lang, "SaleInsufficientStock", map[string]interface{}{
				"ProductName": short.ProductName,
				"Available":   short.Available,
			}),
			ReasonInsufficientStock, map[string]string{
				"product_id": short.ProductID,
				"available":  strconv.Itoa(short.Available),
				"requested":  strconv.Itoa(short.Requested),
			})

	case errors.Is(err, sale.ErrSaleInProgress):
		return withInfo(codes.Aborted, i18n.T(lang, "SaleInProgress", nil), ReasonSaleInProgress, nil)

	case errors.Is(err, sale.ErrSaleNotFound):
		return withInfo(codes.NotFound, i18n.T(lang, "SaleNotFound", nil), ReasonSaleNotFound, nil)
	}

	h.logger.Error("sale request failed", zap.Error(err))
	return status.Error(codes.Internal, i18n.T(lang, "InternalError", nil))
}

func withInfo(code codes.Code, msg, reason string, md map[string]string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   errorDomain,
		Metadata: md,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func mapSaleToProto(s *model.Sale) *retailv1.Sale {
	items := make([]*retailv1.SaleItem, len(s.Items))
	for i, it := range s.Items {
		items[i] = &retailv1.SaleItem{
			ID:          it.ID,
			LineNo:      int32(it.LineNo),
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    int32(it.Quantity),
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Subtotal:    it.Subtotal.StringFixed(2),
		}
	}

	out := &retailv1.Sale{
		ID:            s.ID,
		CustomerName:  s.CustomerName,
		CustomerPhone: s.CustomerPhone,
		PaymentMethod: s.PaymentMethod,
		TotalAmount:   s.TotalAmount.StringFixed(2),
		CreatedAt:     s.CreatedAt,
		Items:         items,
	}
	if s.CreatedBy != nil {
		out.CreatedBy = *s.CreatedBy
	}
	return out
}

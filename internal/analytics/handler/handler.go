package handler

import (
	"context"

	retailv1 "github.com/fekuna/omnipos-retail-service/api/retail/v1"
	"github.com/fekuna/omnipos-retail-service/internal/analytics"
	"github.com/fekuna/omnipos-retail-service/internal/auth"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/pkg/i18n"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type AnalyticsHandler struct {
	retailv1.UnimplementedAnalyticsServiceServer
	uc     analytics.UseCase
	logger logger.ZapLogger
}

func NewAnalyticsHandler(uc analytics.UseCase, log logger.ZapLogger) *AnalyticsHandler {
	return &AnalyticsHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AnalyticsHandler) GetSalesAnalytics(ctx context.Context, _ *retailv1.GetSalesAnalyticsRequest) (*retailv1.SalesAnalyticsResponse, error) {
	lang := auth.GetLanguage(ctx)

	result, err := h.uc.GetSalesAnalytics(ctx)
	if err != nil {
		h.logger.Error("failed to generate analytics", zap.Error(err))
		return nil, status.Error(codes.Internal, i18n.T(lang, "InternalError", nil))
	}
	if result == nil {
		return &retailv1.SalesAnalyticsResponse{Message: i18n.T(lang, "AnalyticsNoData", nil)}, nil
	}

	return &retailv1.SalesAnalyticsResponse{
		Analytics: mapAnalyticsToProto(result),
		Message:   i18n.T(lang, "AnalyticsGenerated", nil),
	}, nil
}

func mapAnalyticsToProto(a *model.SalesAnalytics) *retailv1.SalesAnalytics {
	top := make([]*retailv1.ProductSales, len(a.TopProducts))
	for i, p := range a.TopProducts {
		top[i] = &retailv1.ProductSales{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  int64(p.Quantity),
			Total:     p.Total.StringFixed(2),
		}
	}

	return &retailv1.SalesAnalytics{
		TotalRevenue:   a.TotalRevenue.StringFixed(2),
		TotalItemsSold: int64(a.TotalItemsSold),
		TotalOrders:    int64(a.TotalOrders),
		TopProducts:    top,
		DailyTrend:     mapTrend(a.DailyTrend),
		MonthlyTrend:   mapTrend(a.MonthlyTrend),
	}
}

func mapTrend(points []model.RevenuePoint) []*retailv1.RevenuePoint {
	out := make([]*retailv1.RevenuePoint, len(points))
	for i, p := range points {
		out[i] = &retailv1.RevenuePoint{Period: p.Period, Total: p.Total.StringFixed(2)}
	}
	return out
}

package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-retail-service/internal/analytics"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"go.uber.org/zap"
)

type analyticsUseCase struct {
	repo   analytics.Repository
	topN   int
	logger logger.ZapLogger
}

// NewAnalyticsUseCase reports the topN best sellers, analytics.DefaultTopN when topN <= 0.
func NewAnalyticsUseCase(repo analytics.Repository, topN int, log logger.ZapLogger) analytics.UseCase {
	if topN <= 0 {
		topN = analytics.DefaultTopN
	}
	return &analyticsUseCase{
		repo:   repo,
		topN:   topN,
		logger: log,
	}
}

// GetSalesAnalytics recomputes everything from the sale log on each call.
func (uc *analyticsUseCase) GetSalesAnalytics(ctx context.Context) (*model.SalesAnalytics, error) {
	sales, err := uc.repo.FindAllSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}

	result := analytics.Aggregate(sales, uc.topN)
	if result == nil {
		uc.logger.Debug("no sales recorded yet")
		return nil, nil
	}

	uc.logger.Debug("sales analytics computed",
		zap.Int("orders", result.TotalOrders),
		zap.String("revenue", result.TotalRevenue.StringFixed(2)),
	)
	return result, nil
}

package analytics

import (
	"context"

	"github.com/fekuna/omnipos-retail-service/internal/model"
)

type UseCase interface {
	// GetSalesAnalytics returns nil analytics when no sale has been recorded yet.
	GetSalesAnalytics(ctx context.Context) (*model.SalesAnalytics, error)
}

package analytics

import (
	"context"

	"github.com/fekuna/omnipos-retail-service/internal/model"
)

type Repository interface {
	// FindAllSales returns every recorded sale with its lines, oldest first.
	FindAllSales(ctx context.Context) ([]model.Sale, error)
}

package sale

import (
	"context"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/sale/dto"
)

type UseCase interface {
	ProcessSale(ctx context.Context, input *dto.ProcessSaleInput) (*model.Sale, error)
	GetSale(ctx context.Context, id string) (*model.Sale, error)
	ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)
}

// EventPublisher announces committed sales to other services.
type EventPublisher interface {
	PublishSaleCompleted(ctx context.Context, sale *model.Sale) error
}

// IdempotencyStore remembers which sale a client-supplied idempotency key produced.
type IdempotencyStore interface {
	// Claim reserves key for the caller. When the key is already taken, claimed is false and
	// saleID holds the completed sale, or is empty while the first request is still running.
	Claim(ctx context.Context, key string) (saleID string, claimed bool, err error)
	Complete(ctx context.Context, key, saleID string) error
	Release(ctx context.Context, key string) error
}

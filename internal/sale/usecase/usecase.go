package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/product"
	"github.com/fekuna/omnipos-retail-service/internal/sale"
	"github.com/fekuna/omnipos-retail-service/internal/sale/dto"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	referenceTypeSale     = "sale"
	defaultPublishTimeout = 3 * time.Second
)

// Option customizes the sale use case.
type Option func(*saleUseCase)

// WithPublisher announces committed sales. Without one, nothing is published.
func WithPublisher(p sale.EventPublisher) Option {
	return func(uc *saleUseCase) { uc.publisher = p }
}

// WithPublishTimeout bounds how long a committed sale waits on the publisher.
// Non-positive values keep the default.
func WithPublishTimeout(d time.Duration) Option {
	return func(uc *saleUseCase) {
		if d > 0 {
			uc.publishTimeout = d
		}
	}
}

// WithCatalogSync refreshes the product catalog views touched by a sale.
func WithCatalogSync(c product.CatalogSync) Option {
	return func(uc *saleUseCase) { uc.catalog = c }
}

// WithIdempotencyStore enables idempotency keys. Without one, keys are ignored.
func WithIdempotencyStore(s sale.IdempotencyStore) Option {
	return func(uc *saleUseCase) { uc.idem = s }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(uc *saleUseCase) { uc.now = now }
}

type saleUseCase struct {
	repo           sale.Repository
	publisher      sale.EventPublisher
	publishTimeout time.Duration
	catalog        product.CatalogSync
	idem           sale.IdempotencyStore
	logger         logger.ZapLogger
	now            func() time.Time
}

func NewSaleUseCase(repo sale.Repository, log logger.ZapLogger, opts ...Option) sale.UseCase {
	uc := &saleUseCase{
		repo:           repo,
		publishTimeout: defaultPublishTimeout,
		logger:         log,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *saleUseCase) ProcessSale(ctx context.Context, input *dto.ProcessSaleInput) (*model.Sale, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	if input.IdempotencyKey != "" && uc.idem != nil {
		return uc.processOnce(ctx, input)
	}
	return uc.process(ctx, input)
}

// processOnce guards process with the idempotency key so a replayed request returns the first sale.
func (uc *saleUseCase) processOnce(ctx context.Context, input *dto.ProcessSaleInput) (*model.Sale, error) {
	key := input.IdempotencyKey

	saleID, claimed, err := uc.idem.Claim(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if !claimed {
		if saleID == "" {
			return nil, sale.ErrSaleInProgress
		}
		existing, err := uc.repo.FindByID(ctx, saleID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("idempotency key %q points at missing sale %s", key, saleID)
		}
		uc.logger.Info("replayed sale for idempotency key", zap.String("sale_id", saleID))
		return existing, nil
	}

	s, err := uc.process(ctx, input)
	if err != nil {
		if relErr := uc.idem.Release(context.WithoutCancel(ctx), key); relErr != nil {
			uc.logger.Error("failed to release idempotency key", zap.Error(relErr))
		}
		return nil, err
	}

	if err := uc.idem.Complete(context.WithoutCancel(ctx), key, s.ID); err != nil {
		// The sale is committed; a lost key only means a later replay records a second sale.
		uc.logger.Error("failed to store idempotency key", zap.String("sale_id", s.ID), zap.Error(err))
	}
	return s, nil
}

func (uc *saleUseCase) process(ctx context.Context, input *dto.ProcessSaleInput) (*model.Sale, error) {
	now := uc.now()
	s := &model.Sale{
		ID:            uuid.New().String(),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     now,
	}
	if input.UserID != "" {
		userID := input.UserID
		s.CreatedBy = &userID
	}

	err := uc.repo.RunInTx(ctx, func(ctx context.Context, tx sale.TxRepository) error {
		total := decimal.Zero
		items := make([]model.SaleItem, 0, len(input.Items))

		for i, item := range input.Items {
			p, err := tx.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
			}
			if p == nil {
				return classifyRejectedLine(ctx, tx, item)
			}

			subtotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(subtotal)

			items = append(items, model.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      s.ID,
				LineNo:      i + 1,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    item.Quantity,
				UnitPrice:   p.Price,
				Subtotal:    subtotal,
			})

			refType := referenceTypeSale
			refID := s.ID
			movement := &model.InventoryMovement{
				ID:             uuid.New().String(),
				ProductID:      p.ID,
				MovementType:   model.MovementSale,
				QuantityChange: -item.Quantity,
				QuantityBefore: p.Quantity + item.Quantity,
				QuantityAfter:  p.Quantity,
				ReferenceType:  &refType,
				ReferenceID:    &refID,
				CreatedBy:      s.CreatedBy,
				CreatedAt:      now,
			}
			if err := tx.LogMovement(ctx, movement); err != nil {
				return err
			}
		}

		s.Items = items
		s.TotalAmount = total
		return tx.InsertSale(ctx, s)
	})
	if err != nil {
		uc.logRejected(s.ID, err)
		return nil, err
	}

	uc.logger.Info("sale recorded",
		zap.String("sale_id", s.ID),
		zap.Int("lines", len(s.Items)),
		zap.String("total", s.TotalAmount.StringFixed(2)),
	)

	if uc.catalog != nil {
		uc.catalog.Refresh(ctx, soldProductIDs(s.Items)...)
	}
	uc.publish(ctx, s)

	return s, nil
}

func (uc *saleUseCase) publish(ctx context.Context, s *model.Sale) {
	if uc.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.publishTimeout)
	defer cancel()

	if err := uc.publisher.PublishSaleCompleted(ctx, s); err != nil {
		uc.logger.Error("failed to publish sale event", zap.String("sale_id", s.ID), zap.Error(err))
	}
}

func soldProductIDs(items []model.SaleItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

// classifyRejectedLine explains why a conditional decrement touched no row.
func classifyRejectedLine(ctx context.Context, tx sale.TxRepository, item dto.SaleItemInput) error {
	current, err := tx.FindProductByID(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("find product %s: %w", item.ProductID, err)
	}
	if current == nil {
		return &sale.NotFoundError{ProductID: item.ProductID}
	}
	return &sale.InsufficientStockError{
		ProductID:   current.ID,
		ProductName: current.Name,
		Available:   current.Quantity,
		Requested:   item.Quantity,
	}
}

func (uc *saleUseCase) logRejected(saleID string, err error) {
	var (
		notFound *sale.NotFoundError
		short    *sale.InsufficientStockError
	)
	switch {
	case errors.As(err, &notFound):
		uc.logger.Warn("sale rejected: unknown product", zap.String("sale_id", saleID), zap.String("product_id", notFound.ProductID))
	case errors.As(err, &short):
		uc.logger.Warn("sale rejected: insufficient stock",
			zap.String("sale_id", saleID),
			zap.String("product_id", short.ProductID),
			zap.Int("available", short.Available),
			zap.Int("requested", short.Requested),
		)
	default:
		uc.logger.Error("sale failed", zap.String("sale_id", saleID), zap.Error(err))
	}
}

func validate(input *dto.ProcessSaleInput) error {
	if input == nil || len(input.Items) == 0 {
		return &sale.ValidationError{Field: "items", Reason: "no items provided"}
	}
	for i, item := range input.Items {
		if item.ProductID == "" {
			return &sale.ValidationError{Field: fmt.Sprintf("items[%d].product_id", i), Reason: "is required"}
		}
		if item.Quantity <= 0 {
			return &sale.ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Reason: "must be positive"}
		}
	}
	return nil
}

func (uc *saleUseCase) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, sale.ErrSaleNotFound
	}
	return s, nil
}

func (uc *saleUseCase) ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

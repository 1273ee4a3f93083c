package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/product"
	"github.com/fekuna/omnipos-retail-service/internal/product/dto"
	"github.com/fekuna/omnipos-retail-service/pkg/cache"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"github.com/fekuna/omnipos-retail-service/pkg/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	indexName       = "products"
	listCachePrefix = "products:list:"
	listCacheTTL    = 5 * time.Minute
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"quantity": { "type": "integer" },
			"price": { "type": "scaled_float", "scaling_factor": 100 },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger

	// background cache invalidation and index sync
	bg sync.WaitGroup
}

// NewProductUseCase wires the catalog. cache and es may be nil, which disables list caching and
// search indexing respectively.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validate(input.Name, input.Price.IsNegative()); err != nil {
		return nil, err
	}
	if input.Quantity < 0 {
		return nil, product.Invalid("quantity must not be negative")
	}

	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      strings.TrimSpace(input.Name),
		Quantity:  input.Quantity,
		Price:     input.Price,
		ImageURL:  input.ImageURL,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.afterWrite(p, false)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}

	cacheKey := uc.cacheKey(filters)
	if cacheKey != "" {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var hit cachedList
			if err := json.Unmarshal([]byte(val), &hit); err == nil {
				return hit.Products, hit.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchIndex(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" {
		if data, err := json.Marshal(cachedList{Products: products, Count: count}); err == nil {
			if err := uc.cache.Client.Set(ctx, cacheKey, data, listCacheTTL).Err(); err != nil {
				uc.logger.Warn("failed to cache product list", zap.Error(err))
			}
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchIndex(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name"},
			},
		},
	}
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		q["from"] = (page - 1) * filters.PageSize
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			uc.logger.Warn("skipping malformed search hit", zap.String("id", hit.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) cacheKey(filters *dto.ProductFilters) string {
	if uc.cache == nil {
		return ""
	}
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s%x", listCachePrefix, md5.Sum(data))
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validate(input.Name, input.Price.IsNegative()); err != nil {
		return nil, err
	}

	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}

	p.Name = strings.TrimSpace(input.Name)
	p.Price = input.Price
	p.ImageURL = input.ImageURL
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.afterWrite(p, false)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.afterWrite(&model.Product{BaseModel: model.BaseModel{ID: id}}, true)
	return nil
}

func validate(name string, negativePrice bool) error {
	if strings.TrimSpace(name) == "" {
		return product.Invalid("name is required")
	}
	if negativePrice {
		return product.Invalid("price must not be negative")
	}
	return nil
}

// Refresh drops cached lists before returning, so the next ListProducts reads
// the committed rows. The listed products are reindexed in the background.
func (uc *productUseCase) Refresh(ctx context.Context, ids ...string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	uc.invalidateListCache(ctx)
	cancel()

	if uc.es == nil || len(ids) == 0 {
		return
	}

	uc.bg.Add(1)
	go func() {
		defer uc.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		for _, id := range ids {
			p, err := uc.repo.FindByID(ctx, id)
			if err != nil {
				uc.logger.Warn("failed to reload product for index", zap.String("product_id", id), zap.Error(err))
				continue
			}
			if p == nil {
				uc.deleteFromIndex(ctx, id)
				continue
			}
			uc.syncToIndex(ctx, p)
		}
	}()
}

// afterWrite drops cached lists and syncs the search index without holding up the caller.
func (uc *productUseCase) afterWrite(p *model.Product, deleted bool) {
	uc.bg.Add(1)
	go func() {
		defer uc.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		uc.invalidateListCache(ctx)
		if deleted {
			uc.deleteFromIndex(ctx, p.ID)
		} else {
			uc.syncToIndex(ctx, p)
		}
	}()
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}

	var keys []string
	iter := uc.cache.Client.Scan(ctx, 0, listCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		uc.logger.Warn("failed to scan cached product pages", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := uc.cache.Client.Del(ctx, keys...).Err(); err != nil {
		uc.logger.Warn("failed to drop cached product pages", zap.Int("keys", len(keys)), zap.Error(err))
	}
}

func (uc *productUseCase) syncToIndex(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, indexName, indexMapping)

	if err := uc.es.Index(ctx, indexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) deleteFromIndex(ctx context.Context, id string) {
	if uc.es == nil {
		return
	}
	if err := uc.es.Delete(ctx, indexName, id); err != nil {
		uc.logger.Error("failed to delete product from ES", zap.String("product_id", id), zap.Error(err))
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/product"
	"github.com/fekuna/omnipos-retail-service/internal/product/dto"
	"github.com/fekuna/omnipos-retail-service/pkg/cache"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"github.com/fekuna/omnipos-retail-service/pkg/search"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *mockRepo) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	args := m.Called(ctx, f)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Int(1), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// fakeES records every request and answers with respond.
type fakeES struct {
	mu       sync.Mutex
	requests []string
	respond  func(r *http.Request) (int, string)
}

func (f *fakeES) RoundTrip(r *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	status, body := 200, `{}`
	if f.respond != nil {
		status, body = f.respond(r)
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("X-Elastic-Product", "Elasticsearch")
	return &http.Response{StatusCode: status, Header: h, Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeES) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

type fixture struct {
	repo *mockRepo
	mr   *miniredis.Miniredis
	es   *fakeES
	uc   *productUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisClient(&cache.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })

	es := &fakeES{}
	esClient, err := search.NewClientWithTransport([]string{"http://es:9200"}, es)
	require.NoError(t, err)

	repo := new(mockRepo)
	uc := NewProductUseCase(repo, rc, esClient, logger.NewNop()).(*productUseCase)
	t.Cleanup(func() {
		uc.bg.Wait()
		repo.AssertExpectations(t)
	})
	return &fixture{repo: repo, mr: mr, es: es, uc: uc}
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input dto.CreateProductInput
	}{
		{"blank name", dto.CreateProductInput{Name: "  ", Price: decimal.NewFromInt(1)}},
		{"negative quantity", dto.CreateProductInput{Name: "Soap", Quantity: -1, Price: decimal.NewFromInt(1)}},
		{"negative price", dto.CreateProductInput{Name: "Soap", Price: decimal.RequireFromString("-0.01")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CreateProduct(context.Background(), &tc.input)
			assert.ErrorIs(t, err, product.ErrInvalidProduct)
		})
	}
}

func TestCreateProduct_InvalidatesCacheAndIndexes(t *testing.T) {
	f := newFixture(t)
	f.mr.Set(listCachePrefix+"stale", "x")

	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.ID != "" && p.Name == "Soap" && p.Quantity == 10 && p.Price.Equal(decimal.RequireFromString("5"))
	})).Return(nil)

	p, err := f.uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name: " Soap ", Quantity: 10, Price: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)
	f.uc.bg.Wait()

	assert.False(t, f.mr.Exists(listCachePrefix+"stale"))
	assert.Contains(t, f.es.seen(), "PUT /products/_doc/"+p.ID)
}

func TestGetProduct_NotFound(t *testing.T) {
	f := newFixture(t)
	f.repo.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := f.uc.GetProduct(context.Background(), "ghost")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestListProducts_CachesDatabaseResult(t *testing.T) {
	f := newFixture(t)
	filters := &dto.ProductFilters{SortBy: "name", SortOrder: "asc", Page: 1, PageSize: 20}
	rows := []model.Product{{BaseModel: model.BaseModel{ID: "A"}, Name: "Soap", Quantity: 3, Price: decimal.NewFromInt(5)}}

	f.repo.On("FindAll", mock.Anything, filters).Return(rows, 1, nil).Once()

	first, n, err := f.uc.ListProducts(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	second, n, err := f.uc.ListProducts(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.True(t, second[0].Price.Equal(decimal.NewFromInt(5)))

	assert.Len(t, f.mr.Keys(), 1)
	assert.Equal(t, listCacheTTL, f.mr.TTL(f.mr.Keys()[0]))
}

func TestListProducts_SearchUsesIndex(t *testing.T) {
	f := newFixture(t)
	f.es.respond = func(r *http.Request) (int, string) {
		return 200, `{"hits":{"total":{"value":1},"hits":[{"_id":"A","_source":{"id":"A","name":"Soap","quantity":4,"price":"5"}}]}}`
	}

	products, n, err := f.uc.ListProducts(context.Background(), &dto.ProductFilters{SearchQuery: "soa"})
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	require.Len(t, products, 1)
	assert.Equal(t, "Soap", products[0].Name)
	assert.Equal(t, 4, products[0].Quantity)
	assert.Contains(t, f.es.seen(), "POST /products/_search")
}

func TestListProducts_SearchFallsBackToDatabase(t *testing.T) {
	f := newFixture(t)
	f.es.respond = func(r *http.Request) (int, string) { return 503, `{"error":"unavailable"}` }
	filters := &dto.ProductFilters{SearchQuery: "soa"}

	f.repo.On("FindAll", mock.Anything, filters).Return([]model.Product{{Name: "Soap"}}, 1, nil)

	products, n, err := f.uc.ListProducts(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Soap", products[0].Name)
}

func TestListProducts_WithoutCacheOrIndex(t *testing.T) {
	repo := new(mockRepo)
	uc := NewProductUseCase(repo, nil, nil, logger.NewNop())
	repo.On("FindAll", mock.Anything, mock.Anything).Return([]model.Product{}, 0, nil).Twice()

	_, _, err := uc.ListProducts(context.Background(), &dto.ProductFilters{SearchQuery: "x"})
	require.NoError(t, err)
	_, _, err = uc.ListProducts(context.Background(), nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	existing := &model.Product{BaseModel: model.BaseModel{ID: "A"}, Name: "Soap", Quantity: 7, Price: decimal.NewFromInt(5)}

	f.repo.On("FindByID", mock.Anything, "A").Return(existing, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.Name == "Olive soap" && p.Price.Equal(decimal.RequireFromString("6.50")) && p.Quantity == 7
	})).Return(nil)

	p, err := f.uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID: "A", Name: "Olive soap", Price: decimal.RequireFromString("6.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, p.Quantity, "stock is untouched by catalog updates")
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newFixture(t)
	f.repo.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := f.uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{ID: "ghost", Name: "x"})
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	f.repo.On("Delete", mock.Anything, "A").Return(nil)
	f.repo.On("Delete", mock.Anything, "ghost").Return(product.ErrProductNotFound)

	require.NoError(t, f.uc.DeleteProduct(context.Background(), "A"))
	f.uc.bg.Wait()
	assert.Contains(t, f.es.seen(), "DELETE /products/_doc/A")

	err := f.uc.DeleteProduct(context.Background(), "ghost")
	assert.True(t, errors.Is(err, product.ErrProductNotFound))
}

func TestRefresh_ListReflectsStockAfterSale(t *testing.T) {
	f := newFixture(t)
	filters := &dto.ProductFilters{SortBy: "name", SortOrder: "asc", Page: 1, PageSize: 20}
	before := []model.Product{{BaseModel: model.BaseModel{ID: "A"}, Name: "Soap", Quantity: 10, Price: decimal.NewFromInt(5)}}
	after := &model.Product{BaseModel: model.BaseModel{ID: "A"}, Name: "Soap", Quantity: 7, Price: decimal.NewFromInt(5)}

	f.repo.On("FindAll", mock.Anything, filters).Return(before, 1, nil).Once()
	f.repo.On("FindAll", mock.Anything, filters).Return([]model.Product{*after}, 1, nil).Once()
	f.repo.On("FindByID", mock.Anything, "A").Return(after, nil).Once()

	listed, _, err := f.uc.ListProducts(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 10, listed[0].Quantity)

	// a sale of 3 units committed elsewhere
	f.uc.Refresh(context.Background(), "A")

	listed, _, err = f.uc.ListProducts(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 7, listed[0].Quantity)

	f.uc.bg.Wait()
	assert.Contains(t, f.es.seen(), "PUT /products/_doc/A")
}

func TestRefresh_RemovesVanishedProductFromIndex(t *testing.T) {
	f := newFixture(t)
	f.repo.On("FindByID", mock.Anything, "gone").Return(nil, nil).Once()

	f.uc.Refresh(context.Background(), "gone")
	f.uc.bg.Wait()

	assert.Contains(t, f.es.seen(), "DELETE /products/_doc/gone")
}

func TestInvalidateListCache_ScansEveryPage(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 250; i++ {
		require.NoError(t, f.mr.Set(fmt.Sprintf("%spage-%d", listCachePrefix, i), "[]"))
	}
	require.NoError(t, f.mr.Set("session:keep", "1"))

	f.uc.invalidateListCache(context.Background())

	assert.Equal(t, []string{"session:keep"}, f.mr.Keys())
}

package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	retailv1 "github.com/fekuna/omnipos-retail-service/api/retail/v1"
	"github.com/fekuna/omnipos-retail-service/internal/inventory"
	"github.com/fekuna/omnipos-retail-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/product"
	"github.com/fekuna/omnipos-retail-service/internal/testutil"
	"github.com/fekuna/omnipos-retail-service/pkg/i18n"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"github.com/fekuna/omnipos-retail-service/pkg/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) AdjustInventory(ctx context.Context, in *dto.AdjustInventoryInput) (*model.Product, *model.InventoryMovement, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*model.Product)
	mv, _ := args.Get(1).(*model.InventoryMovement)
	return p, mv, args.Error(2)
}

func (m *mockUseCase) SetStockLevel(ctx context.Context, in *dto.SetStockLevelInput) (*model.Product, *model.InventoryMovement, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*model.Product)
	mv, _ := args.Get(1).(*model.InventoryMovement)
	return p, mv, args.Error(2)
}

func (m *mockUseCase) ListLowStock(ctx context.Context, threshold, page, pageSize int) ([]model.Product, int, error) {
	args := m.Called(ctx, threshold, page, pageSize)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Int(1), args.Error(2)
}

func (m *mockUseCase) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	args := m.Called(ctx, f)
	mv, _ := args.Get(0).([]model.InventoryMovement)
	return mv, args.Int(1), args.Error(2)
}

type InventoryHandlerSuite struct {
	suite.Suite
	uc     *mockUseCase
	client retailv1.InventoryServiceClient
}

func TestInventoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(InventoryHandlerSuite))
}

func (s *InventoryHandlerSuite) SetupSuite() {
	i18n.Init()
}

func (s *InventoryHandlerSuite) SetupTest() {
	s.uc = new(mockUseCase)
	h := NewInventoryHandler(s.uc, logger.NewNop())
	conn := testutil.DialInMemory(s.T(), func(srv *grpc.Server) {
		retailv1.RegisterInventoryServiceServer(srv, h)
	}, grpc.ChainUnaryInterceptor(middleware.ContextInterceptor()))
	s.client = retailv1.NewInventoryServiceClient(conn)
}

func (s *InventoryHandlerSuite) TearDownTest() {
	s.uc.AssertExpectations(s.T())
}

func soap(qty int) *model.Product {
	return &model.Product{
		BaseModel: model.BaseModel{ID: "A", CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:      "Soap",
		Quantity:  qty,
		Price:     decimal.RequireFromString("5"),
	}
}

func (s *InventoryHandlerSuite) TestAdjustInventory_Success() {
	ref := "manual"
	s.uc.On("AdjustInventory", mock.Anything, &dto.AdjustInventoryInput{
		ProductID:      "A",
		QuantityChange: -2,
		Reason:         "damaged",
		ReferenceType:  "manual",
		UserID:         "admin-1",
	}).Return(soap(8), &model.InventoryMovement{
		ID: "m1", ProductID: "A", MovementType: model.MovementAdjustment,
		QuantityChange: -2, QuantityBefore: 10, QuantityAfter: 8, ReferenceType: &ref,
	}, nil)

	ctx := metadata.AppendToOutgoingContext(context.Background(), middleware.HeaderUserID, "admin-1")
	resp, err := s.client.AdjustInventory(ctx, &retailv1.AdjustInventoryRequest{ProductID: "A", QuantityChange: -2, Reason: "damaged"})
	s.Require().NoError(err)
	s.Equal(int32(8), resp.Product.Quantity)
	s.Equal(int32(10), resp.Movement.QuantityBefore)
	s.Equal("manual", resp.Movement.ReferenceType)
}

func (s *InventoryHandlerSuite) TestAdjustInventory_ErrorCodes() {
	tests := []struct {
		productID string
		err       error
		code      codes.Code
	}{
		{"bad", inventory.Invalid("quantity_change must not be zero"), codes.InvalidArgument},
		{"ghost", product.ErrProductNotFound, codes.NotFound},
		{"short", inventory.ErrInsufficientInventory, codes.FailedPrecondition},
		{"boom", errors.New("connection reset"), codes.Internal},
	}
	for _, tc := range tests {
		s.uc.On("AdjustInventory", mock.Anything, mock.MatchedBy(func(in *dto.AdjustInventoryInput) bool {
			return in.ProductID == tc.productID
		})).Return(nil, nil, tc.err).Once()

		_, err := s.client.AdjustInventory(context.Background(), &retailv1.AdjustInventoryRequest{ProductID: tc.productID, QuantityChange: -1})
		s.Equal(tc.code, status.Code(err), tc.productID)
	}
}

func (s *InventoryHandlerSuite) TestAdjustInventory_InternalErrorNotLeaked() {
	s.uc.On("AdjustInventory", mock.Anything, mock.Anything).Return(nil, nil, errors.New("pq: password authentication failed"))

	_, err := s.client.AdjustInventory(context.Background(), &retailv1.AdjustInventoryRequest{ProductID: "A", QuantityChange: 1})
	st, _ := status.FromError(err)
	s.NotContains(st.Message(), "password")
}

func (s *InventoryHandlerSuite) TestSetStockLevel() {
	s.uc.On("SetStockLevel", mock.Anything, &dto.SetStockLevelInput{ProductID: "A", Quantity: 12, Reason: "stocktake"}).
		Return(soap(12), &model.InventoryMovement{ID: "m2", MovementType: model.MovementCount, QuantityChange: 4, QuantityBefore: 8, QuantityAfter: 12}, nil)

	resp, err := s.client.SetStockLevel(context.Background(), &retailv1.SetStockLevelRequest{ProductID: "A", Quantity: 12, Reason: "stocktake"})
	s.Require().NoError(err)
	s.Equal(int32(12), resp.Product.Quantity)
	s.Equal(model.MovementCount, resp.Movement.MovementType)
}

func (s *InventoryHandlerSuite) TestListLowStock() {
	s.uc.On("ListLowStock", mock.Anything, 0, 1, 20).Return([]model.Product{*soap(1)}, 1, nil)

	resp, err := s.client.ListLowStock(context.Background(), &retailv1.ListLowStockRequest{Page: 1, PageSize: 20})
	s.Require().NoError(err)
	s.Equal(int32(1), resp.Total)
	s.Require().Len(resp.Products, 1)
	s.Equal("Soap", resp.Products[0].Name)
}

func (s *InventoryHandlerSuite) TestListInventoryMovements() {
	by := "cashier-7"
	s.uc.On("ListMovements", mock.Anything, &dto.MovementFilters{ProductID: "A", PageSize: 10}).
		Return([]model.InventoryMovement{{ID: "m1", ProductID: "A", MovementType: model.MovementSale, QuantityChange: -3, CreatedBy: &by}}, 1, nil)

	resp, err := s.client.ListInventoryMovements(context.Background(), &retailv1.ListInventoryMovementsRequest{ProductID: "A", PageSize: 10})
	s.Require().NoError(err)
	s.Require().Len(resp.Movements, 1)
	s.Equal(int32(-3), resp.Movements[0].QuantityChange)
	s.Equal("cashier-7", resp.Movements[0].CreatedBy)
}

package handler

import (
	"context"
	"errors"
	"testing"

	retailv1 "github.com/fekuna/omnipos-retail-service/api/retail/v1"
	"github.com/fekuna/omnipos-retail-service/internal/model"
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

func (m *mockUseCase) GetSalesAnalytics(ctx context.Context) (*model.SalesAnalytics, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).(*model.SalesAnalytics)
	return a, args.Error(1)
}

type AnalyticsHandlerSuite struct {
	suite.Suite
	uc     *mockUseCase
	client retailv1.AnalyticsServiceClient
}

func TestAnalyticsHandlerSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsHandlerSuite))
}

func (s *AnalyticsHandlerSuite) SetupSuite() {
	i18n.Init()
}

func (s *AnalyticsHandlerSuite) SetupTest() {
	s.uc = new(mockUseCase)
	h := NewAnalyticsHandler(s.uc, logger.NewNop())
	conn := testutil.DialInMemory(s.T(), func(srv *grpc.Server) {
		retailv1.RegisterAnalyticsServiceServer(srv, h)
	}, grpc.ChainUnaryInterceptor(middleware.ContextInterceptor()))
	s.client = retailv1.NewAnalyticsServiceClient(conn)
}

func (s *AnalyticsHandlerSuite) TearDownTest() {
	s.uc.AssertExpectations(s.T())
}

func (s *AnalyticsHandlerSuite) TestNoSales() {
	s.uc.On("GetSalesAnalytics", mock.Anything).Return(nil, nil)

	resp, err := s.client.GetSalesAnalytics(context.Background(), &retailv1.GetSalesAnalyticsRequest{})
	s.Require().NoError(err)
	s.Nil(resp.Analytics)
	s.Equal("No sales data found", resp.Message)
}

func (s *AnalyticsHandlerSuite) TestNoSalesIndonesian() {
	s.uc.On("GetSalesAnalytics", mock.Anything).Return(nil, nil)

	ctx := metadata.AppendToOutgoingContext(context.Background(), middleware.HeaderAcceptLanguage, "id")
	resp, err := s.client.GetSalesAnalytics(ctx, &retailv1.GetSalesAnalyticsRequest{})
	s.Require().NoError(err)
	s.Equal("Belum ada data penjualan", resp.Message)
}

func (s *AnalyticsHandlerSuite) TestMapsAnalytics() {
	s.uc.On("GetSalesAnalytics", mock.Anything).Return(&model.SalesAnalytics{
		TotalRevenue:   decimal.RequireFromString("39.5"),
		TotalItemsSold: 10,
		TotalOrders:    3,
		TopProducts:    []model.ProductSales{{ProductID: "A", Name: "Soap", Quantity: 5, Total: decimal.RequireFromString("25.5")}},
		DailyTrend:     []model.RevenuePoint{{Period: "2025-02-01", Total: decimal.RequireFromString("14.5")}},
		MonthlyTrend:   []model.RevenuePoint{{Period: "2025-02", Total: decimal.RequireFromString("14.5")}},
	}, nil)

	resp, err := s.client.GetSalesAnalytics(context.Background(), &retailv1.GetSalesAnalyticsRequest{})
	s.Require().NoError(err)
	a := resp.Analytics
	s.Require().NotNil(a)
	s.Equal("39.50", a.TotalRevenue)
	s.Equal(int64(10), a.TotalItemsSold)
	s.Equal(int64(3), a.TotalOrders)
	s.Require().Len(a.TopProducts, 1)
	s.Equal("25.50", a.TopProducts[0].Total)
	s.Equal("2025-02-01", a.DailyTrend[0].Period)
	s.Equal("14.50", a.MonthlyTrend[0].Total)
	s.Equal("Sales analytics generated successfully", resp.Message)
}

func (s *AnalyticsHandlerSuite) TestStoreFailure() {
	s.uc.On("GetSalesAnalytics", mock.Anything).Return(nil, errors.New("load sales: connection refused"))

	_, err := s.client.GetSalesAnalytics(context.Background(), &retailv1.GetSalesAnalyticsRequest{})
	st, _ := status.FromError(err)
	s.Equal(codes.Internal, st.Code())
	s.NotContains(st.Message(), "connection refused")
}

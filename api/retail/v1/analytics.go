package retailv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const AnalyticsService_GetSalesAnalytics_FullMethodName = "/retail.v1.AnalyticsService/GetSalesAnalytics"

type ProductSales struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Total     string `json:"total"`
}

type RevenuePoint struct {
	Period string `json:"period"`
	Total  string `json:"total"`
}

type SalesAnalytics struct {
	TotalRevenue   string          `json:"total_revenue"`
	TotalItemsSold int64           `json:"total_items_sold"`
	TotalOrders    int64           `json:"total_orders"`
	TopProducts    []*ProductSales `json:"top_products"`
	DailyTrend     []*RevenuePoint `json:"daily_trend"`
	MonthlyTrend   []*RevenuePoint `json:"monthly_trend"`
}

type GetSalesAnalyticsRequest struct{}

// SalesAnalyticsResponse has a nil Analytics and a Message when no sale was ever recorded.
type SalesAnalyticsResponse struct {
	Analytics *SalesAnalytics `json:"analytics"`
	Message   string          `json:"message,omitempty"`
}

type AnalyticsServiceServer interface {
	GetSalesAnalytics(context.Context, *GetSalesAnalyticsRequest) (*SalesAnalyticsResponse, error)
}

type UnimplementedAnalyticsServiceServer struct{}

func (UnimplementedAnalyticsServiceServer) GetSalesAnalytics(context.Context, *GetSalesAnalyticsRequest) (*SalesAnalyticsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalesAnalytics not implemented")
}

var AnalyticsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "retail.v1.AnalyticsService",
	HandlerType: (*AnalyticsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSalesAnalytics",
			Handler: unary(AnalyticsService_GetSalesAnalytics_FullMethodName, func(srv any, ctx context.Context, req *GetSalesAnalyticsRequest) (*SalesAnalyticsResponse, error) {
				return srv.(AnalyticsServiceServer).GetSalesAnalytics(ctx, req)
			}),
		},
	},
	Metadata: "retail/v1/analytics",
}

func RegisterAnalyticsServiceServer(s grpc.ServiceRegistrar, srv AnalyticsServiceServer) {
	s.RegisterService(&AnalyticsService_ServiceDesc, srv)
}

type AnalyticsServiceClient interface {
	GetSalesAnalytics(ctx context.Context, in *GetSalesAnalyticsRequest, opts ...grpc.CallOption) (*SalesAnalyticsResponse, error)
}

type analyticsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAnalyticsServiceClient(cc grpc.ClientConnInterface) AnalyticsServiceClient {
	return &analyticsServiceClient{cc}
}

func (c *analyticsServiceClient) GetSalesAnalytics(ctx context.Context, in *GetSalesAnalyticsRequest, opts ...grpc.CallOption) (*SalesAnalyticsResponse, error) {
	out := new(SalesAnalyticsResponse)
	if err := c.cc.Invoke(ctx, AnalyticsService_GetSalesAnalytics_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

package retailv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SaleService_ProcessSale_FullMethodName = "/retail.v1.SaleService/ProcessSale"
	SaleService_GetSale_FullMethodName     = "/retail.v1.SaleService/GetSale"
	SaleService_ListSales_FullMethodName   = "/retail.v1.SaleService/ListSales"
)

type SaleItem struct {
	ID          string `json:"id"`
	LineNo      int32  `json:"line_no"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type Sale struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	PaymentMethod string      `json:"payment_method"`
	TotalAmount   string      `json:"total_amount"`
	CreatedBy     string      `json:"created_by,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []*SaleItem `json:"items"`
}

type SaleLine struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

// ProcessSaleRequest may also carry its idempotency key in the "idempotency-key" metadata header.
type ProcessSaleRequest struct {
	Items          []*SaleLine `json:"items"`
	CustomerName   string      `json:"customer_name"`
	CustomerPhone  string      `json:"customer_phone"`
	PaymentMethod  string      `json:"payment_method"`
	IdempotencyKey string      `json:"idempotency_key,omitempty"`
}

type SaleResponse struct {
	Sale *Sale `json:"sale"`
}

type GetSaleRequest struct {
	ID string `json:"id"`
}

type ListSalesRequest struct {
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
	Page     int32      `json:"page,omitempty"`
	PageSize int32      `json:"page_size,omitempty"`
}

type ListSalesResponse struct {
	Sales    []*Sale `json:"sales"`
	Total    int32   `json:"total"`
	Page     int32   `json:"page"`
	PageSize int32   `json:"page_size"`
}

type SaleServiceServer interface {
	ProcessSale(context.Context, *ProcessSaleRequest) (*SaleResponse, error)
	GetSale(context.Context, *GetSaleRequest) (*SaleResponse, error)
	ListSales(context.Context, *ListSalesRequest) (*ListSalesResponse, error)
}

type UnimplementedSaleServiceServer struct{}

func (UnimplementedSaleServiceServer) ProcessSale(context.Context, *ProcessSaleRequest) (*SaleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ProcessSale not implemented")
}
func (UnimplementedSaleServiceServer) GetSale(context.Context, *GetSaleRequest) (*SaleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSale not implemented")
}
func (UnimplementedSaleServiceServer) ListSales(context.Context, *ListSalesRequest) (*ListSalesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSales not implemented")
}

var SaleService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "retail.v1.SaleService",
	HandlerType: (*SaleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ProcessSale",
			Handler: unary(SaleService_ProcessSale_FullMethodName, func(srv any, ctx context.Context, req *ProcessSaleRequest) (*SaleResponse, error) {
				return srv.(SaleServiceServer).ProcessSale(ctx, req)
			}),
		},
		{
			MethodName: "GetSale",
			Handler: unary(SaleService_GetSale_FullMethodName, func(srv any, ctx context.Context, req *GetSaleRequest) (*SaleResponse, error) {
				return srv.(SaleServiceServer).GetSale(ctx, req)
			}),
		},
		{
			MethodName: "ListSales",
			Handler: unary(SaleService_ListSales_FullMethodName, func(srv any, ctx context.Context, req *ListSalesRequest) (*ListSalesResponse, error) {
				return srv.(SaleServiceServer).ListSales(ctx, req)
			}),
		},
	},
	Metadata: "retail/v1/sale",
}

func RegisterSaleServiceServer(s grpc.ServiceRegistrar, srv SaleServiceServer) {
	s.RegisterService(&SaleService_ServiceDesc, srv)
}

type SaleServiceClient interface {
	ProcessSale(ctx context.Context, in *ProcessSaleRequest, opts ...grpc.CallOption) (*SaleResponse, error)
	GetSale(ctx context.Context, in *GetSaleRequest, opts ...grpc.CallOption) (*SaleResponse, error)
	ListSales(ctx context.Context, in *ListSalesRequest, opts ...grpc.CallOption) (*ListSalesResponse, error)
}

type saleServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSaleServiceClient(cc grpc.ClientConnInterface) SaleServiceClient {
	return &saleServiceClient{cc}
}

func (c *saleServiceClient) ProcessSale(ctx context.Context, in *ProcessSaleRequest, opts ...grpc.CallOption) (*SaleResponse, error) {
	out := new(SaleResponse)
	if err := c.cc.Invoke(ctx, SaleService_ProcessSale_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *saleServiceClient) GetSale(ctx context.Context, in *GetSaleRequest, opts ...grpc.CallOption) (*SaleResponse, error) {
	out := new(SaleResponse)
	if err := c.cc.Invoke(ctx, SaleService_GetSale_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *saleServiceClient) ListSales(ctx context.Context, in *ListSalesRequest, opts ...grpc.CallOption) (*ListSalesResponse, error) {
	out := new(ListSalesResponse)
	if err := c.cc.Invoke(ctx, SaleService_ListSales_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

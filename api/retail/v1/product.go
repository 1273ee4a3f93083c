package retailv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	ProductService_CreateProduct_FullMethodName = "/retail.v1.ProductService/CreateProduct"
	ProductService_GetProduct_FullMethodName    = "/retail.v1.ProductService/GetProduct"
	ProductService_ListProducts_FullMethodName  = "/retail.v1.ProductService/ListProducts"
	ProductService_UpdateProduct_FullMethodName = "/retail.v1.ProductService/UpdateProduct"
	ProductService_DeleteProduct_FullMethodName = "/retail.v1.ProductService/DeleteProduct"
)

// Product prices are decimal strings, e.g. "12.50".
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int32     `json:"quantity"`
	Price     string    `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name     string  `json:"name"`
	Quantity int32   `json:"quantity"`
	Price    string  `json:"price"`
	ImageURL *string `json:"image_url,omitempty"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type ListProductsRequest struct {
	Query     string `json:"query,omitempty"`
	SortBy    string `json:"sort_by,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
	Page      int32  `json:"page,omitempty"`
	PageSize  int32  `json:"page_size,omitempty"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
	Total    int32      `json:"total"`
	Page     int32      `json:"page"`
	PageSize int32      `json:"page_size"`
}

type UpdateProductRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	ImageURL *string `json:"image_url,omitempty"`
}

type DeleteProductRequest struct {
	ID string `json:"id"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type ProductServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*emptypb.Empty, error)
}

// UnimplementedProductServiceServer can be embedded to satisfy ProductServiceServer.
type UnimplementedProductServiceServer struct{}

func (UnimplementedProductServiceServer) CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProduct not implemented")
}
func (UnimplementedProductServiceServer) GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProduct not implemented")
}
func (UnimplementedProductServiceServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProducts not implemented")
}
func (UnimplementedProductServiceServer) UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProduct not implemented")
}
func (UnimplementedProductServiceServer) DeleteProduct(context.Context, *DeleteProductRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteProduct not implemented")
}

var ProductService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "retail.v1.ProductService",
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateProduct",
			Handler: unary(ProductService_CreateProduct_FullMethodName, func(srv any, ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
				return srv.(ProductServiceServer).CreateProduct(ctx, req)
			}),
		},
		{
			MethodName: "GetProduct",
			Handler: unary(ProductService_GetProduct_FullMethodName, func(srv any, ctx context.Context, req *GetProductRequest) (*ProductResponse, error) {
				return srv.(ProductServiceServer).GetProduct(ctx, req)
			}),
		},
		{
			MethodName: "ListProducts",
			Handler: unary(ProductService_ListProducts_FullMethodName, func(srv any, ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
				return srv.(ProductServiceServer).ListProducts(ctx, req)
			}),
		},
		{
			MethodName: "UpdateProduct",
			Handler: unary(ProductService_UpdateProduct_FullMethodName, func(srv any, ctx context.Context, req *UpdateProductRequest) (*ProductResponse, error) {
				return srv.(ProductServiceServer).UpdateProduct(ctx, req)
			}),
		},
		{
			MethodName: "DeleteProduct",
			Handler: unary(ProductService_DeleteProduct_FullMethodName, func(srv any, ctx context.Context, req *DeleteProductRequest) (*emptypb.Empty, error) {
				return srv.(ProductServiceServer).DeleteProduct(ctx, req)
			}),
		},
	},
	Metadata: "retail/v1/product",
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ProductService_ServiceDesc, srv)
}

type ProductServiceClient interface {
	CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error)
	GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*ProductResponse, error)
	ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
	UpdateProduct(ctx context.Context, in *UpdateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, in *DeleteProductRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type productServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProductServiceClient(cc grpc.ClientConnInterface) ProductServiceClient {
	return &productServiceClient{cc}
}

func (c *productServiceClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	out := new(ProductResponse)
	if err := c.cc.Invoke(ctx, ProductService_CreateProduct_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *productServiceClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	out := new(ProductResponse)
	if err := c.cc.Invoke(ctx, ProductService_GetProduct_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *productServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	out := new(ListProductsResponse)
	if err := c.cc.Invoke(ctx, ProductService_ListProducts_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *productServiceClient) UpdateProduct(ctx context.Context, in *UpdateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	out := new(ProductResponse)
	if err := c.cc.Invoke(ctx, ProductService_UpdateProduct_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *productServiceClient) DeleteProduct(ctx context.Context, in *DeleteProductRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, ProductService_DeleteProduct_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

package retailv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	InventoryService_AdjustInventory_FullMethodName        = "/retail.v1.InventoryService/AdjustInventory"
	InventoryService_SetStockLevel_FullMethodName          = "/retail.v1.InventoryService/SetStockLevel"
	InventoryService_ListLowStock_FullMethodName           = "/retail.v1.InventoryService/ListLowStock"
	InventoryService_ListInventoryMovements_FullMethodName = "/retail.v1.InventoryService/ListInventoryMovements"
)

type InventoryMovement struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	MovementType   string    `json:"movement_type"`
	QuantityChange int32     `json:"quantity_change"`
	QuantityBefore int32     `json:"quantity_before"`
	QuantityAfter  int32     `json:"quantity_after"`
	ReferenceType  string    `json:"reference_type,omitempty"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type AdjustInventoryRequest struct {
	ProductID      string `json:"product_id"`
	QuantityChange int32  `json:"quantity_change"`
	MovementType   string `json:"movement_type,omitempty"`
	Reason         string `json:"reason,omitempty"`
	ReferenceType  string `json:"reference_type,omitempty"`
	ReferenceID    string `json:"reference_id,omitempty"`
}

type SetStockLevelRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}

type InventoryResponse struct {
	Product  *Product           `json:"product"`
	Movement *InventoryMovement `json:"movement"`
}

type ListLowStockRequest struct {
	Threshold int32 `json:"threshold,omitempty"`
	Page      int32 `json:"page,omitempty"`
	PageSize  int32 `json:"page_size,omitempty"`
}

type ListInventoryMovementsRequest struct {
	ProductID    string `json:"product_id,omitempty"`
	MovementType string `json:"movement_type,omitempty"`
	Page         int32  `json:"page,omitempty"`
	PageSize     int32  `json:"page_size,omitempty"`
}

type ListInventoryMovementsResponse struct {
	Movements []*InventoryMovement `json:"movements"`
	Total     int32                `json:"total"`
	Page      int32                `json:"page"`
	PageSize  int32                `json:"page_size"`
}

type InventoryServiceServer interface {
	AdjustInventory(context.Context, *AdjustInventoryRequest) (*InventoryResponse, error)
	SetStockLevel(context.Context, *SetStockLevelRequest) (*InventoryResponse, error)
	ListLowStock(context.Context, *ListLowStockRequest) (*ListProductsResponse, error)
	ListInventoryMovements(context.Context, *ListInventoryMovementsRequest) (*ListInventoryMovementsResponse, error)
}

type UnimplementedInventoryServiceServer struct{}

func (UnimplementedInventoryServiceServer) AdjustInventory(context.Context, *AdjustInventoryRequest) (*InventoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AdjustInventory not implemented")
}
func (UnimplementedInventoryServiceServer) SetStockLevel(context.Context, *SetStockLevelRequest) (*InventoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetStockLevel not implemented")
}
func (UnimplementedInventoryServiceServer) ListLowStock(context.Context, *ListLowStockRequest) (*ListProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListLowStock not implemented")
}
func (UnimplementedInventoryServiceServer) ListInventoryMovements(context.Context, *ListInventoryMovementsRequest) (*ListInventoryMovementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListInventoryMovements not implemented")
}

var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "retail.v1.InventoryService",
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AdjustInventory",
			Handler: unary(InventoryService_AdjustInventory_FullMethodName, func(srv any, ctx context.Context, req *AdjustInventoryRequest) (*InventoryResponse, error) {
				return srv.(InventoryServiceServer).AdjustInventory(ctx, req)
			}),
		},
		{
			MethodName: "SetStockLevel",
			Handler: unary(InventoryService_SetStockLevel_FullMethodName, func(srv any, ctx context.Context, req *SetStockLevelRequest) (*InventoryResponse, error) {
				return srv.(InventoryServiceServer).SetStockLevel(ctx, req)
			}),
		},
		{
			MethodName: "ListLowStock",
			Handler: unary(InventoryService_ListLowStock_FullMethodName, func(srv any, ctx context.Context, req *ListLowStockRequest) (*ListProductsResponse, error) {
				return srv.(InventoryServiceServer).ListLowStock(ctx, req)
			}),
		},
		{
			MethodName: "ListInventoryMovements",
			Handler: unary(InventoryService_ListInventoryMovements_FullMethodName, func(srv any, ctx context.Context, req *ListInventoryMovementsRequest) (*ListInventoryMovementsResponse, error) {
				return srv.(InventoryServiceServer).ListInventoryMovements(ctx, req)
			}),
		},
	},
	Metadata: "retail/v1/inventory",
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

type InventoryServiceClient interface {
	AdjustInventory(ctx context.Context, in *AdjustInventoryRequest, opts ...grpc.CallOption) (*InventoryResponse, error)
	SetStockLevel(ctx context.Context, in *SetStockLevelRequest, opts ...grpc.CallOption) (*InventoryResponse, error)
	ListLowStock(ctx context.Context, in *ListLowStockRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
	ListInventoryMovements(ctx context.Context, in *ListInventoryMovementsRequest, opts ...grpc.CallOption) (*ListInventoryMovementsResponse, error)
}

type inventoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryServiceClient(cc grpc.ClientConnInterface) InventoryServiceClient {
	return &inventoryServiceClient{cc}
}

func (c *inventoryServiceClient) AdjustInventory(ctx context.Context, in *AdjustInventoryRequest, opts ...grpc.CallOption) (*InventoryResponse, error) {
	out := new(InventoryResponse)
	if err := c.cc.Invoke(ctx, InventoryService_AdjustInventory_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *inventoryServiceClient) SetStockLevel(ctx context.Context, in *SetStockLevelRequest, opts ...grpc.CallOption) (*InventoryResponse, error) {
	out := new(InventoryResponse)
	if err := c.cc.Invoke(ctx, InventoryService_SetStockLevel_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *inventoryServiceClient) ListLowStock(ctx context.Context, in *ListLowStockRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	out := new(ListProductsResponse)
	if err := c.cc.Invoke(ctx, InventoryService_ListLowStock_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *inventoryServiceClient) ListInventoryMovements(ctx context.Context, in *ListInventoryMovementsRequest, opts ...grpc.CallOption) (*ListInventoryMovementsResponse, error) {
	out := new(ListInventoryMovementsResponse)
	if err := c.cc.Invoke(ctx, InventoryService_ListInventoryMovements_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

package handler

import (
	"context"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/auth"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "shopflow.inventory.v1.InventoryService"

type InventoryServiceServer interface {
	GetStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	AdjustStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListMovements(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "GetStock", InventoryServiceServer.GetStock),
		rpc.Unary(ServiceName, "AdjustStock", InventoryServiceServer.AdjustStock),
		rpc.Unary(ServiceName, "ListMovements", InventoryServiceServer.ListMovements),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shopflow/inventory/v1/inventory.proto",
}

func Register(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

type stockRequest struct {
	ProductID   string `json:"product_id"`
	VariationID string `json:"variation_id"`
}

type movementListResponse struct {
	Movements []model.StockMovement `json:"movements"`
	Total     int                   `json:"total"`
}

func (h *InventoryHandler) GetStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in stockRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	level, err := h.uc.GetStock(ctx, auth.GetStoreID(ctx), in.ProductID, in.VariationID)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(level)
}

func (h *InventoryHandler) AdjustStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.AdjustStockInput
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	in.StoreID = auth.GetStoreID(ctx)
	in.UserID = auth.GetUserID(ctx)
	if in.UserID == "" {
		in.UserID = "unknown"
	}

	level, err := h.uc.AdjustStock(ctx, &in)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(level)
}

func (h *InventoryHandler) ListMovements(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var filters dto.MovementFilters
	if err := rpc.Decode(req, &filters); err != nil {
		return nil, err
	}
	filters.StoreID = auth.GetStoreID(ctx)
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 50
	}

	movements, total, err := h.uc.ListMovements(ctx, &filters)
	if err != nil {
		return nil, err
	}
	if movements == nil {
		movements = []model.StockMovement{}
	}
	return rpc.Encode(movementListResponse{Movements: movements, Total: total})
}

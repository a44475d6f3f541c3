package handler

import (
	"context"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/auth"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "shopflow.cart.v1.CartService"

type CartServiceServer interface {
	CreateCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	AddItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateQuantity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RemoveItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ClearCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "CreateCart", CartServiceServer.CreateCart),
		rpc.Unary(ServiceName, "GetCart", CartServiceServer.GetCart),
		rpc.Unary(ServiceName, "AddItem", CartServiceServer.AddItem),
		rpc.Unary(ServiceName, "UpdateQuantity", CartServiceServer.UpdateQuantity),
		rpc.Unary(ServiceName, "RemoveItem", CartServiceServer.RemoveItem),
		rpc.Unary(ServiceName, "ClearCart", CartServiceServer.ClearCart),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shopflow/cart/v1/cart.proto",
}

func Register(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

type createCartRequest struct {
	Catalog model.CatalogType `json:"catalog"`
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
	LineID    string `json:"line_id"`
}

func (h *CartHandler) CreateCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createCartRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	if in.Catalog == "" {
		in.Catalog = model.CatalogRetail
	}

	view, err := h.uc.CreateCart(ctx, auth.GetStoreID(ctx), in.Catalog)
	if err != nil {
		return nil, err
	}
	h.logger.Debug("cart created", zap.String("session_id", view.Cart.SessionID), zap.String("catalog", string(in.Catalog)))
	return rpc.Encode(view)
}

func (h *CartHandler) GetCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in sessionRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	view, err := h.uc.GetCart(ctx, auth.GetStoreID(ctx), in.SessionID)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(view)
}

func (h *CartHandler) AddItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.AddItemInput
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	in.StoreID = auth.GetStoreID(ctx)

	view, err := h.uc.AddItem(ctx, &in)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(view)
}

func (h *CartHandler) UpdateQuantity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.UpdateQuantityInput
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	in.StoreID = auth.GetStoreID(ctx)

	view, err := h.uc.UpdateQuantity(ctx, &in)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(view)
}

func (h *CartHandler) RemoveItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in sessionRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	view, err := h.uc.RemoveItem(ctx, auth.GetStoreID(ctx), in.SessionID, in.LineID)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(view)
}

func (h *CartHandler) ClearCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in sessionRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	if err := h.uc.ClearCart(ctx, auth.GetStoreID(ctx), in.SessionID); err != nil {
		return nil, err
	}
	return &structpb.Struct{}, nil
}

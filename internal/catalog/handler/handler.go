package handler

import (
	"context"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/auth"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/catalog"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/catalog/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "shopflow.catalog.v1.CatalogService"

type CatalogServiceServer interface {
	ListCatalog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	QuotePrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "ListCatalog", CatalogServiceServer.ListCatalog),
		rpc.Unary(ServiceName, "GetProduct", CatalogServiceServer.GetProduct),
		rpc.Unary(ServiceName, "QuotePrice", CatalogServiceServer.QuotePrice),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shopflow/catalog/v1/catalog.proto",
}

func Register(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) ListCatalog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var q dto.ListQuery
	if err := rpc.Decode(req, &q); err != nil {
		return nil, err
	}
	q.StoreID = auth.GetStoreID(ctx)

	listing, err := h.uc.ListCatalog(ctx, &q)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(listing)
}

type getProductRequest struct {
	Catalog   model.CatalogType `json:"catalog"`
	ProductID string            `json:"product_id"`
}

func (h *CatalogHandler) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in getProductRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	if in.Catalog == "" {
		in.Catalog = model.CatalogRetail
	}

	entry, err := h.uc.GetEntry(ctx, auth.GetStoreID(ctx), in.Catalog, in.ProductID)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(entry)
}

func (h *CatalogHandler) QuotePrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.QuoteInput
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	in.StoreID = auth.GetStoreID(ctx)

	quote, err := h.uc.QuotePrice(ctx, &in)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(quote)
}

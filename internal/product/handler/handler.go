package handler

import (
	"context"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/auth"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "shopflow.product.v1.ProductAdminService"

type ProductAdminServiceServer interface {
	CreateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

	AddVariation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListVariations(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RemoveVariation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

	SetPriceTiers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductAdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "CreateProduct", ProductAdminServiceServer.CreateProduct),
		rpc.Unary(ServiceName, "GetProduct", ProductAdminServiceServer.GetProduct),
		rpc.Unary(ServiceName, "ListProducts", ProductAdminServiceServer.ListProducts),
		rpc.Unary(ServiceName, "UpdateProduct", ProductAdminServiceServer.UpdateProduct),
		rpc.Unary(ServiceName, "DeleteProduct", ProductAdminServiceServer.DeleteProduct),
		rpc.Unary(ServiceName, "AddVariation", ProductAdminServiceServer.AddVariation),
		rpc.Unary(ServiceName, "ListVariations", ProductAdminServiceServer.ListVariations),
		rpc.Unary(ServiceName, "RemoveVariation", ProductAdminServiceServer.RemoveVariation),
		rpc.Unary(ServiceName, "SetPriceTiers", ProductAdminServiceServer.SetPriceTiers),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shopflow/product/v1/product.proto",
}

func Register(s grpc.ServiceRegistrar, srv ProductAdminServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type idRequest struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	VariationID string `json:"variation_id"`
}

type productListResponse struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type variationListResponse struct {
	Variations []model.ProductVariation `json:"variations"`
}

type tierListResponse struct {
	Tiers []model.PriceTier `json:"tiers"`
}

// --- Products ---

func (h *ProductHandler) CreateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.CreateProductInput
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	in.StoreID = auth.GetStoreID(ctx)

	p, err := h.uc.CreateProduct(ctx, &in)
	if err != nil {
		h.logger.Warn("failed to create product", zap.String("store_id", in.StoreID), zap.Error(err))
		return nil, err
	}
	return rpc.Encode(p)
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	p, err := h.uc.GetProduct(ctx, auth.GetStoreID(ctx), in.ID)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(p)
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var filters dto.ProductFilters
	if err := rpc.Decode(req, &filters); err != nil {
		return nil, err
	}
	filters.StoreID = auth.GetStoreID(ctx)
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}

	products, total, err := h.uc.ListProducts(ctx, &filters)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return rpc.Encode(productListResponse{
		Products: products,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.UpdateProductInput
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	in.StoreID = auth.GetStoreID(ctx)

	p, err := h.uc.UpdateProduct(ctx, &in)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(p)
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	if err := h.uc.DeleteProduct(ctx, auth.GetStoreID(ctx), in.ID); err != nil {
		return nil, err
	}
	return &structpb.Struct{}, nil
}

// --- Variations ---

func (h *ProductHandler) AddVariation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.CreateVariationInput
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	in.StoreID = auth.GetStoreID(ctx)

	v, err := h.uc.AddVariation(ctx, &in)
	if err != nil {
		return nil, err
	}
	return rpc.Encode(v)
}

func (h *ProductHandler) ListVariations(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	variations, err := h.uc.ListVariations(ctx, auth.GetStoreID(ctx), in.ProductID)
	if err != nil {
		return nil, err
	}
	if variations == nil {
		variations = []model.ProductVariation{}
	}
	return rpc.Encode(variationListResponse{Variations: variations})
}

func (h *ProductHandler) RemoveVariation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	if err := h.uc.RemoveVariation(ctx, auth.GetStoreID(ctx), in.ProductID, in.VariationID); err != nil {
		return nil, err
	}
	return &structpb.Struct{}, nil
}

// --- Price tiers ---

func (h *ProductHandler) SetPriceTiers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.SetPriceTiersInput
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	in.StoreID = auth.GetStoreID(ctx)

	tiers, err := h.uc.SetPriceTiers(ctx, &in)
	if err != nil {
		return nil, err
	}
	if tiers == nil {
		tiers = []model.PriceTier{}
	}
	return rpc.Encode(tierListResponse{Tiers: tiers})
}

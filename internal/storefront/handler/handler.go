package handler

import (
	"context"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/auth"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/rpc"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/storefront"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/storefront/dto"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "shopflow.storefront.v1.StorefrontService"

type StorefrontServiceServer interface {
	GetSettings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateSettings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "GetSettings", StorefrontServiceServer.GetSettings),
		rpc.Unary(ServiceName, "UpdateSettings", StorefrontServiceServer.UpdateSettings),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shopflow/storefront/v1/storefront.proto",
}

func Register(s grpc.ServiceRegistrar, srv StorefrontServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type StorefrontHandler struct {
	uc     storefront.UseCase
	logger logger.ZapLogger
}

func NewStorefrontHandler(uc storefront.UseCase, log logger.ZapLogger) *StorefrontHandler {
	return &StorefrontHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StorefrontHandler) GetSettings(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	settings, err := h.uc.GetSettings(ctx, auth.GetStoreID(ctx))
	if err != nil {
		return nil, err
	}
	return rpc.Encode(settings)
}

func (h *StorefrontHandler) UpdateSettings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.UpdateSettingsInput
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}
	in.StoreID = auth.GetStoreID(ctx)

	settings, err := h.uc.UpdateSettings(ctx, &in)
	if err != nil {
		return nil, err
	}
	h.logger.Info("storefront settings updated",
		zap.String("store_id", in.StoreID),
		zap.String("user_id", auth.GetUserID(ctx)),
	)
	return rpc.Encode(settings)
}

package middleware

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/auth"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ContextInterceptor copies the store and user ids from metadata into the
// context and rejects calls without a store. gRPC's own services are exempt.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if strings.HasPrefix(info.FullMethod, "/grpc.") {
			return handler(ctx, req)
		}
		storeID := strings.TrimSpace(auth.GetStoreID(ctx))
		if storeID == "" {
			return nil, rpc.ErrMissingStore
		}
		ctx = auth.WithStoreID(ctx, storeID)
		if userID := auth.GetUserID(ctx); userID != "" {
			ctx = auth.WithUserID(ctx, userID)
		}
		return handler(ctx, req)
	}
}

// ErrorInterceptor converts returned domain errors into status errors.
func ErrorInterceptor(mapper *rpc.ErrorMapper) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			return nil, mapper.Status(ctx, err)
		}
		return resp, nil
	}
}

func RecoveryInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("store_id", auth.GetStoreID(ctx)),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		switch code {
		case codes.OK:
			log.Info("rpc completed", fields...)
		case codes.Internal, codes.Unknown, codes.DataLoss:
			log.Error("rpc failed", append(fields, zap.Error(err))...)
		default:
			log.Warn("rpc rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// Chain returns the server interceptors in the order they must run.
func Chain(log logger.ZapLogger, mapper *rpc.ErrorMapper) grpc.ServerOption {
	return grpc.ChainUnaryInterceptor(
		LoggingInterceptor(log),
		RecoveryInterceptor(log),
		ErrorInterceptor(mapper),
		ContextInterceptor(),
	)
}

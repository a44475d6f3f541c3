package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

const (
	StoreIDHeader  = "x-store-id"
	UserIDHeader   = "x-user-id"
	LanguageHeader = "accept-language"
)

type ctxKey int

const (
	storeIDKey ctxKey = iota
	userIDKey
)

// WithStoreID attaches the tenant the request acts on.
func WithStoreID(ctx context.Context, storeID string) context.Context {
	return context.WithValue(ctx, storeIDKey, storeID)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetStoreID reads the store set by the interceptor, falling back to
// incoming metadata.
func GetStoreID(ctx context.Context) string {
	if val, ok := ctx.Value(storeIDKey).(string); ok {
		return val
	}
	return fromMetadata(ctx, StoreIDHeader)
}

func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(userIDKey).(string); ok {
		return val
	}
	return fromMetadata(ctx, UserIDHeader)
}

// GetLanguage returns the caller's Accept-Language preferences, if any.
func GetLanguage(ctx context.Context) string {
	return fromMetadata(ctx, LanguageHeader)
}

func fromMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if val := md.Get(key); len(val) > 0 {
		return val[0]
	}
	return ""
}

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestGetStoreID(t *testing.T) {
	assert.Equal(t, "", GetStoreID(context.Background()))

	md := metadata.Pairs(StoreIDHeader, "from-md", UserIDHeader, "u-1", LanguageHeader, "en")
	ctx := metadata.NewIncomingContext(context.Background(), md)
	assert.Equal(t, "from-md", GetStoreID(ctx))
	assert.Equal(t, "u-1", GetUserID(ctx))
	assert.Equal(t, "en", GetLanguage(ctx))

	ctx = WithStoreID(ctx, "from-ctx")
	assert.Equal(t, "from-ctx", GetStoreID(ctx))
}

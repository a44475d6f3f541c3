package cart

import (
	"context"
	"time"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
)

type UseCase interface {
	CreateCart(ctx context.Context, storeID string, catalog model.CatalogType) (*dto.CartView, error)
	GetCart(ctx context.Context, storeID, sessionID string) (*dto.CartView, error)
	AddItem(ctx context.Context, input *dto.AddItemInput) (*dto.CartView, error)
	UpdateQuantity(ctx context.Context, input *dto.UpdateQuantityInput) (*dto.CartView, error)
	RemoveItem(ctx context.Context, storeID, sessionID, lineID string) (*dto.CartView, error)
	ClearCart(ctx context.Context, storeID, sessionID string) error
}

// Locker serializes writers of the same cart session across instances.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

// ProductFinder loads a product with its variations and price tiers.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

// PricingProvider hands out the resolver configured for a store's catalog.
type PricingProvider interface {
	Resolver(ctx context.Context, storeID string, catalog model.CatalogType) (*pricing.Resolver, error)
}

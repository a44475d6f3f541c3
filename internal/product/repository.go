package product

import (
	"context"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, p *model.Product) error
	// FindByID loads the product with its active variations and price tiers.
	// It returns nil, nil when the product does not exist.
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	// FindActiveByStore loads every active product of a store with variations and tiers.
	FindActiveByStore(ctx context.Context, storeID string) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, storeID, id string) error

	IsSKUUnique(ctx context.Context, storeID, sku, excludeID string) (bool, error)

	AddVariation(ctx context.Context, v *model.ProductVariation) error
	ListVariations(ctx context.Context, productID string) ([]model.ProductVariation, error)
	DeleteVariation(ctx context.Context, productID, variationID string) (bool, error)

	ReplaceTiers(ctx context.Context, productID string, tiers []model.PriceTier) error
}

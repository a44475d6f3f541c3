package product

import (
	"context"
	"errors"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product/dto"
)

var (
	ErrNotFound            = errors.New("product not found")
	ErrVariationNotFound   = errors.New("variation not found")
	ErrSKUExists           = errors.New("SKU already exists")
	ErrNameRequired        = errors.New("product name is required")
	ErrInvalidRetailPrice  = errors.New("retail price must be greater than zero")
	ErrInvalidPriceModel   = errors.New("unknown price model")
	ErrWholesaleIncomplete = errors.New("wholesale price and minimum quantity are required for this price model")
	ErrInvalidWholesale    = errors.New("wholesale price must not be negative and minimum quantity must be at least 1")
	ErrNegativeStock       = errors.New("stock must not be negative")
	ErrInvalidTiers        = errors.New("price tiers must have unique orders, positive prices and increasing minimum quantities")
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, storeID, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, storeID, id string) error

	// Variation ops
	AddVariation(ctx context.Context, input *dto.CreateVariationInput) (*model.ProductVariation, error)
	ListVariations(ctx context.Context, storeID, productID string) ([]model.ProductVariation, error)
	RemoveVariation(ctx context.Context, storeID, productID, variationID string) error

	SetPriceTiers(ctx context.Context, input *dto.SetPriceTiersInput) ([]model.PriceTier, error)
}

// CatalogCache drops the cached public listings of a store.
type CatalogCache interface {
	Invalidate(ctx context.Context, storeID string) error
}

// SearchIndexer keeps the product search index in sync with writes.
type SearchIndexer interface {
	Sync(ctx context.Context, p *model.Product) error
	Remove(ctx context.Context, id string) error
}

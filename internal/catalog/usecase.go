package catalog

import (
	"context"
	"errors"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/catalog/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariationNotFound = errors.New("variation not found")
)

type UseCase interface {
	ListCatalog(ctx context.Context, query *dto.ListQuery) (*Listing, error)
	GetEntry(ctx context.Context, storeID string, catalog model.CatalogType, productID string) (*Entry, error)
	QuotePrice(ctx context.Context, input *dto.QuoteInput) (*dto.Quote, error)
}

// Listing carries the requested page plus the store-wide category list.
type Listing struct {
	Items      []Entry  `json:"items"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	Categories []string `json:"categories"`
}

// ProductSource reads the products a store publishes.
type ProductSource interface {
	FindActiveByStore(ctx context.Context, storeID string) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

// ListingStore caches a store's active product set.
type ListingStore interface {
	Get(ctx context.Context, storeID string) ([]model.Product, bool, error)
	Set(ctx context.Context, storeID string, products []model.Product) error
}

// Searcher resolves a free text query to product IDs.
type Searcher interface {
	Search(ctx context.Context, storeID, query string, limit int) ([]string, error)
}

// PricingProvider hands out the resolver configured for a store's catalog.
type PricingProvider interface {
	Resolver(ctx context.Context, storeID string, catalog model.CatalogType) (*pricing.Resolver, error)
}

package storefront

import (
	"context"
	"errors"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/storefront/dto"
)

var (
	ErrCatalogDisabled  = errors.New("catalog is not enabled for this store")
	ErrInvalidCatalog   = errors.New("unknown catalog type")
	ErrInvalidTemplate  = errors.New("unknown storefront template")
	ErrNoCatalogEnabled = errors.New("at least one catalog must be enabled")
)

type UseCase interface {
	GetSettings(ctx context.Context, storeID string) (*model.StoreSettings, error)
	UpdateSettings(ctx context.Context, input *dto.UpdateSettingsInput) (*model.StoreSettings, error)
	// Resolver returns the price resolver for a published catalog of the store.
	Resolver(ctx context.Context, storeID string, catalog model.CatalogType) (*pricing.Resolver, error)
}

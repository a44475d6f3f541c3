package storefront

import (
	"context"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
)

type Repository interface {
	// FindByStore returns nil, nil for stores without saved settings.
	FindByStore(ctx context.Context, storeID string) (*model.StoreSettings, error)
	Upsert(ctx context.Context, s *model.StoreSettings) error
}

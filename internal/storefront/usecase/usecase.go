package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/storefront"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/storefront/dto"
	"go.uber.org/zap"
)

type storefrontUseCase struct {
	repo   storefront.Repository
	logger logger.ZapLogger
}

func NewStorefrontUseCase(repo storefront.Repository, log logger.ZapLogger) storefront.UseCase {
	return &storefrontUseCase{repo: repo, logger: log}
}

func (uc *storefrontUseCase) GetSettings(ctx context.Context, storeID string) (*model.StoreSettings, error) {
	s, err := uc.repo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return model.DefaultStoreSettings(storeID), nil
	}
	return s, nil
}

func (uc *storefrontUseCase) UpdateSettings(ctx context.Context, input *dto.UpdateSettingsInput) (*model.StoreSettings, error) {
	if !input.RetailCatalogEnabled && !input.WholesaleCatalogEnabled {
		return nil, storefront.ErrNoCatalogEnabled
	}

	s, err := uc.GetSettings(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}

	if input.Template != "" {
		tpl := model.Template(strings.ToLower(input.Template))
		if !tpl.Valid() {
			return nil, storefront.ErrInvalidTemplate
		}
		s.Template = tpl
	}
	if input.Currency != "" {
		s.Currency = strings.ToUpper(input.Currency)
	}
	s.RetailCatalogEnabled = input.RetailCatalogEnabled
	s.WholesaleCatalogEnabled = input.WholesaleCatalogEnabled
	s.GradualWholesaleEnabled = input.GradualWholesaleEnabled
	s.UpdatedAt = time.Now()

	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}

	uc.logger.Info("store settings updated",
		zap.String("store_id", s.StoreID),
		zap.Bool("wholesale", s.WholesaleCatalogEnabled),
		zap.Bool("gradual", s.GradualWholesaleEnabled),
	)
	return s, nil
}

func (uc *storefrontUseCase) Resolver(ctx context.Context, storeID string, catalog model.CatalogType) (*pricing.Resolver, error) {
	if !catalog.Valid() {
		return nil, storefront.ErrInvalidCatalog
	}
	s, err := uc.GetSettings(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !s.CatalogEnabled(catalog) {
		return nil, storefront.ErrCatalogDisabled
	}
	return pricing.NewResolver(pricing.Settings{GradualWholesaleEnabled: s.GradualWholesaleEnabled}), nil
}

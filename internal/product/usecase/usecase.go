package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product/dto"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo    product.Repository
	cache   product.CatalogCache
	indexer product.SearchIndexer
	logger  logger.ZapLogger
	now     func() time.Time
}

// NewProductUseCase wires the admin product flows. indexer may be nil when
// search is not configured.
func NewProductUseCase(repo product.Repository, cache product.CatalogCache, indexer product.SearchIndexer, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:    repo,
		cache:   cache,
		indexer: indexer,
		logger:  log,
		now:     time.Now,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	priceModel, err := validateProduct(input)
	if err != nil {
		return nil, err
	}

	unique, err := uc.repo.IsSKUUnique(ctx, input.StoreID, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, product.ErrSKUExists
	}

	now := uc.now()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		StoreID:   input.StoreID,
		IsActive:  true,
	}
	applyInput(p, input, priceModel)

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.afterWrite(p)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, storeID, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.StoreID != storeID {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, input.StoreID, input.ID)
	if err != nil {
		return nil, err
	}

	priceModel, err := validateProduct(&input.CreateProductInput)
	if err != nil {
		return nil, err
	}

	if input.SKU != "" && (p.SKU == nil || *p.SKU != input.SKU) {
		unique, err := uc.repo.IsSKUUnique(ctx, input.StoreID, input.SKU, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, product.ErrSKUExists
		}
	}

	applyInput(p, &input.CreateProductInput, priceModel)
	p.IsActive = input.IsActive
	p.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.afterWrite(p)
	return p, nil
}

// DeleteProduct hides the product from the public catalog; rows are kept.
func (uc *productUseCase) DeleteProduct(ctx context.Context, storeID, id string) error {
	p, err := uc.GetProduct(ctx, storeID, id)
	if err != nil {
		return err
	}

	if err := uc.repo.SoftDelete(ctx, storeID, id); err != nil {
		return err
	}

	go uc.invalidate(context.Background(), p.StoreID)
	if uc.indexer != nil {
		go func() {
			if err := uc.indexer.Remove(context.Background(), id); err != nil {
				uc.logger.Error("failed to remove product from index", zap.String("product_id", id), zap.Error(err))
			}
		}()
	}
	return nil
}

func (uc *productUseCase) AddVariation(ctx context.Context, input *dto.CreateVariationInput) (*model.ProductVariation, error) {
	p, err := uc.GetProduct(ctx, input.StoreID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if input.Stock < 0 {
		return nil, product.ErrNegativeStock
	}

	now := uc.now()
	v := &model.ProductVariation{
		BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:       p.ID,
		Color:           optional(input.Color),
		Size:            optional(input.Size),
		Material:        optional(input.Material),
		PriceAdjustment: input.PriceAdjustment,
		Stock:           input.Stock,
		ImageURL:        optional(input.ImageURL),
		SKU:             optional(input.SKU),
		IsActive:        true,
	}
	if err := uc.repo.AddVariation(ctx, v); err != nil {
		return nil, err
	}

	go uc.invalidate(context.Background(), p.StoreID)
	return v, nil
}

func (uc *productUseCase) ListVariations(ctx context.Context, storeID, productID string) ([]model.ProductVariation, error) {
	if _, err := uc.GetProduct(ctx, storeID, productID); err != nil {
		return nil, err
	}
	return uc.repo.ListVariations(ctx, productID)
}

func (uc *productUseCase) RemoveVariation(ctx context.Context, storeID, productID, variationID string) error {
	p, err := uc.GetProduct(ctx, storeID, productID)
	if err != nil {
		return err
	}
	removed, err := uc.repo.DeleteVariation(ctx, productID, variationID)
	if err != nil {
		return err
	}
	if !removed {
		return product.ErrVariationNotFound
	}

	go uc.invalidate(context.Background(), p.StoreID)
	return nil
}

func (uc *productUseCase) SetPriceTiers(ctx context.Context, input *dto.SetPriceTiersInput) ([]model.PriceTier, error) {
	p, err := uc.GetProduct(ctx, input.StoreID, input.ProductID)
	if err != nil {
		return nil, err
	}

	tiers := make([]model.PriceTier, 0, len(input.Tiers))
	for _, t := range input.Tiers {
		tiers = append(tiers, model.PriceTier{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			TierOrder: t.TierOrder,
			TierName:  strings.TrimSpace(t.TierName),
			Price:     t.Price,
			MinQty:    t.MinQty,
			IsActive:  t.IsActive,
		})
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].TierOrder < tiers[j].TierOrder })
	if err := validateTiers(tiers); err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceTiers(ctx, p.ID, tiers); err != nil {
		return nil, err
	}

	go uc.invalidate(context.Background(), p.StoreID)
	return tiers, nil
}

func (uc *productUseCase) afterWrite(p *model.Product) {
	go uc.invalidate(context.Background(), p.StoreID)
	if uc.indexer != nil {
		go func() {
			if err := uc.indexer.Sync(context.Background(), p); err != nil {
				uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
			}
		}()
	}
}

func (uc *productUseCase) invalidate(ctx context.Context, storeID string) {
	if err := uc.cache.Invalidate(ctx, storeID); err != nil {
		uc.logger.Warn("failed to invalidate catalog cache", zap.String("store_id", storeID), zap.Error(err))
	}
}

func applyInput(p *model.Product, input *dto.CreateProductInput, priceModel model.PriceModel) {
	p.Name = strings.TrimSpace(input.Name)
	p.Description = optional(input.Description)
	p.SKU = optional(input.SKU)
	p.Category = strings.TrimSpace(input.Category)
	p.ImageURL = optional(input.ImageURL)
	p.RetailPrice = input.RetailPrice
	p.WholesalePrice = input.WholesalePrice
	p.MinWholesaleQty = input.MinWholesaleQty
	p.Stock = input.Stock
	p.AllowNegativeStock = input.AllowNegativeStock
	p.IsFeatured = input.IsFeatured
	p.PriceModel = priceModel
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

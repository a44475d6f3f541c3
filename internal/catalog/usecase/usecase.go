package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/catalog"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/catalog/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
	searchLimit     = 500
)

type catalogUseCase struct {
	source   catalog.ProductSource
	cache    catalog.ListingStore
	loads    singleflight.Group
	pricing  catalog.PricingProvider
	searcher catalog.Searcher
	logger   logger.ZapLogger
}

// NewCatalogUseCase builds the storefront listing. cache and searcher may be nil.
func NewCatalogUseCase(
	source catalog.ProductSource,
	cache catalog.ListingStore,
	searcher catalog.Searcher,
	prices catalog.PricingProvider,
	log logger.ZapLogger,
) catalog.UseCase {
	return &catalogUseCase{
		source:   source,
		cache:    cache,
		pricing:  prices,
		searcher: searcher,
		logger:   log,
	}
}

func (uc *catalogUseCase) ListCatalog(ctx context.Context, q *dto.ListQuery) (*catalog.Listing, error) {
	kind := q.Catalog
	if kind == "" {
		kind = model.CatalogRetail
	}
	resolver, err := uc.pricing.Resolver(ctx, q.StoreID, kind)
	if err != nil {
		return nil, err
	}

	products, err := uc.loadProducts(ctx, q.StoreID)
	if err != nil {
		return nil, err
	}

	entries := make([]catalog.Entry, 0, len(products))
	for i := range products {
		entry, err := buildEntry(resolver, &products[i], kind)
		if err != nil {
			uc.logger.Warn("skipping unpriceable product",
				zap.String("store_id", q.StoreID),
				zap.String("product_id", products[i].ID),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, *entry)
	}
	categories := catalog.Categories(entries)

	filter := catalog.Filter{
		Category:     q.Category,
		Query:        q.Search,
		FeaturedOnly: q.FeaturedOnly,
		InStockOnly:  q.InStockOnly,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
	}
	if strings.TrimSpace(q.Search) != "" && uc.searcher != nil {
		ids, err := uc.searcher.Search(ctx, q.StoreID, q.Search, searchLimit)
		if err != nil {
			uc.logger.Warn("search index unavailable, matching in memory", zap.Error(err))
		} else {
			entries = keepIDs(entries, ids)
			filter.Query = ""
		}
	}

	matched := catalog.Apply(entries, filter)
	catalog.Sort(matched, catalog.SortBy(q.SortBy))

	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return &catalog.Listing{
		Items:      catalog.Page(matched, page, size),
		Total:      len(matched),
		Page:       page,
		PageSize:   size,
		Categories: categories,
	}, nil
}

func (uc *catalogUseCase) GetEntry(ctx context.Context, storeID string, kind model.CatalogType, productID string) (*catalog.Entry, error) {
	resolver, err := uc.pricing.Resolver(ctx, storeID, kind)
	if err != nil {
		return nil, err
	}
	p, err := uc.findProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	return buildEntry(resolver, p, kind)
}

func (uc *catalogUseCase) QuotePrice(ctx context.Context, input *dto.QuoteInput) (*dto.Quote, error) {
	kind := input.Catalog
	if kind == "" {
		kind = model.CatalogRetail
	}
	resolver, err := uc.pricing.Resolver(ctx, input.StoreID, kind)
	if err != nil {
		return nil, err
	}
	p, err := uc.findProduct(ctx, input.StoreID, input.ProductID)
	if err != nil {
		return nil, err
	}

	var variation *model.ProductVariation
	if input.VariationID != "" {
		variation = p.FindVariation(input.VariationID)
		if variation == nil || !variation.IsActive {
			return nil, catalog.ErrVariationNotFound
		}
	}

	res, err := resolver.ResolvePrice(p, kind, input.Quantity)
	if err != nil {
		return nil, err
	}

	quote := &dto.Quote{
		ProductID:     p.ID,
		VariationID:   input.VariationID,
		Quantity:      input.Quantity,
		UnitPrice:     res.UnitPrice,
		OriginalPrice: p.RetailPrice,
		Resolution:    *res,
	}
	if variation != nil {
		quote.UnitPrice = quote.UnitPrice.Add(variation.PriceAdjustment)
		quote.OriginalPrice = quote.OriginalPrice.Add(variation.PriceAdjustment)
	}
	if quote.UnitPrice.IsNegative() {
		return nil, pricing.ErrInvalidProductPrice
	}
	quote.Subtotal = quote.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))
	return quote, nil
}

func (uc *catalogUseCase) findProduct(ctx context.Context, storeID, productID string) (*model.Product, error) {
	p, err := uc.source.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive || p.StoreID != storeID {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

// loadProducts reads through the listing cache. Concurrent misses for the
// same store share one database load.
func (uc *catalogUseCase) loadProducts(ctx context.Context, storeID string) ([]model.Product, error) {
	if uc.cache != nil {
		products, ok, err := uc.cache.Get(ctx, storeID)
		if err != nil {
			uc.logger.Warn("catalog cache read failed", zap.String("store_id", storeID), zap.Error(err))
		} else if ok {
			return products, nil
		}
	}

	v, err, _ := uc.loads.Do(storeID, func() (any, error) {
		products, err := uc.source.FindActiveByStore(ctx, storeID)
		if err != nil {
			return nil, err
		}
		if uc.cache != nil {
			if err := uc.cache.Set(ctx, storeID, products); err != nil {
				uc.logger.Warn("catalog cache write failed", zap.String("store_id", storeID), zap.Error(err))
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Product), nil
}

// buildEntry prices a product for display: one unit, or the wholesale
// minimum when the product cannot be sold below it.
func buildEntry(resolver *pricing.Resolver, p *model.Product, kind model.CatalogType) (*catalog.Entry, error) {
	res, err := resolver.ResolvePrice(p, kind, 1)
	var below *pricing.BelowMinimumQuantityError
	if errors.As(err, &below) {
		res, err = resolver.ResolvePrice(p, kind, below.Required)
	}
	if err != nil {
		return nil, err
	}

	available := catalog.Available(p)
	return &catalog.Entry{
		Product:   *p,
		Price:     *res,
		Available: available,
		InStock:   available > 0 || p.AllowNegativeStock,
	}, nil
}

func keepIDs(entries []catalog.Entry, ids []string) []catalog.Entry {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := make([]catalog.Entry, 0, len(ids))
	for _, e := range entries {
		if _, ok := set[e.Product.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}

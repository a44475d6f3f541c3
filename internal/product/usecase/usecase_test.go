package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu         sync.Mutex
	products   map[string]*model.Product
	variations map[string][]model.ProductVariation
	tiers      map[string][]model.PriceTier
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:   map[string]*model.Product{},
		variations: map[string][]model.ProductVariation{},
		tiers:      map[string][]model.PriceTier{},
	}
}

func (r *fakeRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Variations = r.variations[id]
	cp.PriceTiers = r.tiers[id]
	return &cp, nil
}

func (r *fakeRepo) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		if p.StoreID == f.StoreID {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) FindActiveByStore(ctx context.Context, storeID string) ([]model.Product, error) {
	all, _, err := r.FindAll(ctx, &dto.ProductFilters{StoreID: storeID})
	return all, err
}

func (r *fakeRepo) Update(ctx context.Context, p *model.Product) error {
	return r.Create(ctx, p)
}

func (r *fakeRepo) SoftDelete(_ context.Context, _, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[id].IsActive = false
	return nil
}

func (r *fakeRepo) IsSKUUnique(_ context.Context, storeID, sku, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.StoreID == storeID && p.SKU != nil && *p.SKU == sku && p.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakeRepo) AddVariation(_ context.Context, v *model.ProductVariation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variations[v.ProductID] = append(r.variations[v.ProductID], *v)
	return nil
}

func (r *fakeRepo) ListVariations(_ context.Context, productID string) ([]model.ProductVariation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.variations[productID], nil
}

func (r *fakeRepo) DeleteVariation(_ context.Context, productID, variationID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vs := r.variations[productID]
	for i := range vs {
		if vs[i].ID == variationID {
			r.variations[productID] = append(vs[:i], vs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ReplaceTiers(_ context.Context, productID string, tiers []model.PriceTier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tiers[productID] = tiers
	return nil
}

type recordingCache struct {
	mu     sync.Mutex
	stores []string
}

func (c *recordingCache) Invalidate(_ context.Context, storeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores = append(c.stores, storeID)
	return nil
}

func (c *recordingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stores)
}

func intPtr(i int) *int { return &i }

func validInput() *dto.CreateProductInput {
	return &dto.CreateProductInput{
		StoreID:         "store-1",
		Name:            "  Linen shirt ",
		SKU:             "LS-01",
		Category:        "shirts",
		RetailPrice:     decimal.RequireFromString("100"),
		WholesalePrice:  decimal.NewNullDecimal(decimal.RequireFromString("70")),
		MinWholesaleQty: intPtr(10),
		Stock:           30,
		PriceModel:      "hybrid",
	}
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepo()
	cache := &recordingCache{}
	uc := NewProductUseCase(repo, cache, nil, logger.NewNop())

	p, err := uc.CreateProduct(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Linen shirt", p.Name)
	assert.Equal(t, model.PriceModelHybrid, p.PriceModel)
	assert.True(t, p.IsActive)
	assert.Eventually(t, func() bool { return cache.count() == 1 }, time.Second, 10*time.Millisecond)

	_, err = uc.CreateProduct(context.Background(), validInput())
	assert.ErrorIs(t, err, product.ErrSKUExists)
}

func TestCreateProductValidation(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), &recordingCache{}, nil, logger.NewNop())
	ctx := context.Background()

	cases := map[string]struct {
		mutate func(*dto.CreateProductInput)
		want   error
	}{
		"missing name":     {func(in *dto.CreateProductInput) { in.Name = " " }, product.ErrNameRequired},
		"zero price":       {func(in *dto.CreateProductInput) { in.RetailPrice = decimal.Zero }, product.ErrInvalidRetailPrice},
		"unknown model":    {func(in *dto.CreateProductInput) { in.PriceModel = "auction" }, product.ErrInvalidPriceModel},
		"negative stock":   {func(in *dto.CreateProductInput) { in.Stock = -1 }, product.ErrNegativeStock},
		"zero min qty":     {func(in *dto.CreateProductInput) { in.MinWholesaleQty = intPtr(0) }, product.ErrInvalidWholesale},
		"hybrid no price":  {func(in *dto.CreateProductInput) { in.WholesalePrice = decimal.NullDecimal{} }, product.ErrWholesaleIncomplete},
		"wholesale no min": {func(in *dto.CreateProductInput) { in.PriceModel = "wholesale_only"; in.MinWholesaleQty = nil }, product.ErrWholesaleIncomplete},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			tc.mutate(in)
			_, err := uc.CreateProduct(ctx, in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEmptyPriceModelDefaultsToRetail(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), &recordingCache{}, nil, logger.NewNop())
	in := validInput()
	in.PriceModel = ""

	p, err := uc.CreateProduct(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, model.PriceModelRetailOnly, p.PriceModel)
}

func TestProductsAreScopedToStore(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), &recordingCache{}, nil, logger.NewNop())
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, validInput())
	require.NoError(t, err)

	_, err = uc.GetProduct(ctx, "store-2", p.ID)
	assert.ErrorIs(t, err, product.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteProduct(ctx, "store-2", p.ID), product.ErrNotFound)
}

func TestDeleteProductIsSoft(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, &recordingCache{}, nil, logger.NewNop())
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, uc.DeleteProduct(ctx, "store-1", p.ID))

	got, err := uc.GetProduct(ctx, "store-1", p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestVariations(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), &recordingCache{}, nil, logger.NewNop())
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, validInput())
	require.NoError(t, err)

	v, err := uc.AddVariation(ctx, &dto.CreateVariationInput{
		StoreID:         "store-1",
		ProductID:       p.ID,
		Color:           "red",
		PriceAdjustment: decimal.RequireFromString("-2.5"),
		Stock:           4,
	})
	require.NoError(t, err)
	assert.Equal(t, "red", *v.Color)
	assert.Nil(t, v.Size)

	list, err := uc.ListVariations(ctx, "store-1", p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.RemoveVariation(ctx, "store-1", p.ID, v.ID))
	assert.ErrorIs(t, uc.RemoveVariation(ctx, "store-1", p.ID, v.ID), product.ErrVariationNotFound)
}

func TestSetPriceTiers(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), &recordingCache{}, nil, logger.NewNop())
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, validInput())
	require.NoError(t, err)

	tiers, err := uc.SetPriceTiers(ctx, &dto.SetPriceTiersInput{
		StoreID:   "store-1",
		ProductID: p.ID,
		Tiers: []dto.PriceTierInput{
			{TierOrder: 3, TierName: "box", Price: decimal.RequireFromString("60"), MinQty: 50, IsActive: true},
			{TierOrder: 1, TierName: "retail", Price: decimal.RequireFromString("100"), MinQty: 1, IsActive: true},
			{TierOrder: 2, TierName: "pack", Price: decimal.RequireFromString("80"), MinQty: 10, IsActive: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{tiers[0].TierOrder, tiers[1].TierOrder, tiers[2].TierOrder})

	_, err = uc.SetPriceTiers(ctx, &dto.SetPriceTiersInput{
		StoreID:   "store-1",
		ProductID: p.ID,
		Tiers: []dto.PriceTierInput{
			{TierOrder: 1, TierName: "retail", Price: decimal.RequireFromString("100"), MinQty: 10},
			{TierOrder: 2, TierName: "pack", Price: decimal.RequireFromString("80"), MinQty: 5},
		},
	})
	assert.ErrorIs(t, err, product.ErrInvalidTiers)
}

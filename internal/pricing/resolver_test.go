package pricing

import (
	"errors"
	"testing"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(i int) *int { return &i }

func hybridProduct() *model.Product {
	return &model.Product{
		BaseModel:       model.BaseModel{ID: "p1"},
		RetailPrice:     dec("100"),
		WholesalePrice:  decimal.NewNullDecimal(dec("70")),
		MinWholesaleQty: intPtr(10),
		PriceModel:      model.PriceModelHybrid,
	}
}

func gradualProduct() *model.Product {
	return &model.Product{
		BaseModel:   model.BaseModel{ID: "g1"},
		RetailPrice: dec("50"),
		PriceModel:  model.PriceModelGradualWholesale,
		PriceTiers: []model.PriceTier{
			{TierOrder: 3, TierName: "box", Price: dec("35"), MinQty: 50, IsActive: true},
			{TierOrder: 1, TierName: "retail", Price: dec("50"), MinQty: 1, IsActive: true},
			{TierOrder: 2, TierName: "pack", Price: dec("42.50"), MinQty: 10, IsActive: true},
			{TierOrder: 4, TierName: "pallet", Price: dec("30"), MinQty: 200, IsActive: false},
		},
	}
}

func TestRetailOnlyIgnoresQuantity(t *testing.T) {
	r := NewResolver(Settings{GradualWholesaleEnabled: true})
	p := &model.Product{
		RetailPrice:     dec("19.99"),
		WholesalePrice:  decimal.NewNullDecimal(dec("9.99")),
		MinWholesaleQty: intPtr(2),
		PriceModel:      model.PriceModelRetailOnly,
	}

	for _, qty := range []int{1, 2, 10, 1000} {
		for _, c := range []model.CatalogType{model.CatalogRetail, model.CatalogWholesale} {
			res, err := r.ResolvePrice(p, c, qty)
			require.NoError(t, err)
			assert.True(t, res.UnitPrice.Equal(dec("19.99")), "qty=%d catalog=%s", qty, c)
			assert.Nil(t, res.Savings)
			assert.False(t, res.IsDiscounted())
		}
	}
}

func TestHybridWholesaleAtThreshold(t *testing.T) {
	r := NewResolver(Settings{})

	res, err := r.ResolvePrice(hybridProduct(), model.CatalogWholesale, 10)
	require.NoError(t, err)

	assert.True(t, res.UnitPrice.Equal(dec("70")))
	assert.Equal(t, 10, res.MinQtyForPrice)
	assert.Equal(t, SourceWholesale, res.Source)
	require.NotNil(t, res.Savings)
	assert.Equal(t, 30, res.Savings.Percentage)
	assert.True(t, res.Savings.Amount.Equal(dec("30")))
	assert.Zero(t, res.Savings.QtyRemaining)
}

func TestHybridBelowThresholdFallsBackToRetail(t *testing.T) {
	r := NewResolver(Settings{})

	res, err := r.ResolvePrice(hybridProduct(), model.CatalogWholesale, 5)
	require.NoError(t, err)

	assert.True(t, res.UnitPrice.Equal(dec("100")))
	assert.Equal(t, SourceRetail, res.Source)
	require.NotNil(t, res.Savings)
	assert.Equal(t, 5, res.Savings.QtyRemaining)
	assert.Equal(t, 30, res.Savings.Percentage)
	assert.Equal(t, "wholesale", res.Savings.NextTierName)
}

func TestHybridRetailCatalogNeverUsesWholesale(t *testing.T) {
	r := NewResolver(Settings{})

	res, err := r.ResolvePrice(hybridProduct(), model.CatalogRetail, 50)
	require.NoError(t, err)

	assert.True(t, res.UnitPrice.Equal(dec("100")))
	assert.Nil(t, res.Savings)
}

func TestWholesalePriceWhenThresholdMet(t *testing.T) {
	r := NewResolver(Settings{})
	cases := []struct {
		retail, wholesale string
		minQty, qty       int
	}{
		{"100", "70", 10, 10},
		{"12.40", "12.39", 1, 1},
		{"5", "0.01", 3, 999},
	}
	for _, tc := range cases {
		p := &model.Product{
			RetailPrice:     dec(tc.retail),
			WholesalePrice:  decimal.NewNullDecimal(dec(tc.wholesale)),
			MinWholesaleQty: intPtr(tc.minQty),
			PriceModel:      model.PriceModelHybrid,
		}
		res, err := r.ResolvePrice(p, model.CatalogWholesale, tc.qty)
		require.NoError(t, err)
		assert.True(t, res.UnitPrice.Equal(dec(tc.wholesale)), "%+v", tc)
	}
}

func TestSavingsSuppressedWhenWholesaleNotCheaper(t *testing.T) {
	r := NewResolver(Settings{GradualWholesaleEnabled: true})
	for _, pm := range []model.PriceModel{model.PriceModelHybrid, model.PriceModelWholesaleOnly, model.PriceModelGradualWholesale} {
		for _, w := range []string{"100", "120"} {
			p := &model.Product{
				RetailPrice:     dec("100"),
				WholesalePrice:  decimal.NewNullDecimal(dec(w)),
				MinWholesaleQty: intPtr(2),
				PriceModel:      pm,
				PriceTiers: []model.PriceTier{
					{TierOrder: 2, TierName: "pack", Price: dec("80"), MinQty: 5, IsActive: true},
				},
			}
			for _, qty := range []int{2, 3, 10} {
				res, err := r.ResolvePrice(p, model.CatalogWholesale, qty)
				require.NoError(t, err)
				assert.Nil(t, res.Savings, "model=%s wholesale=%s qty=%d", pm, w, qty)
			}
		}
	}
}

func TestSavingsNeverNegativeForTiersAboveRetail(t *testing.T) {
	r := NewResolver(Settings{GradualWholesaleEnabled: true})
	p := &model.Product{
		RetailPrice: dec("100"),
		PriceModel:  model.PriceModelGradualWholesale,
		PriceTiers: []model.PriceTier{
			{TierOrder: 2, TierName: "pack", Price: dec("120"), MinQty: 5, IsActive: true},
			{TierOrder: 3, TierName: "box", Price: dec("110"), MinQty: 10, IsActive: true},
		},
	}
	for _, qty := range []int{1, 5, 10} {
		res, err := r.ResolvePrice(p, model.CatalogRetail, qty)
		require.NoError(t, err)
		assert.Nil(t, res.Savings, "qty=%d", qty)
	}

	// A cheaper tier further up is still advertised against retail.
	p.PriceTiers[1].Price = dec("80")
	res, err := r.ResolvePrice(p, model.CatalogRetail, 5)
	require.NoError(t, err)
	assert.True(t, res.UnitPrice.Equal(dec("120")))
	require.NotNil(t, res.Savings)
	assert.True(t, res.Savings.Amount.Equal(dec("20")))
	assert.Equal(t, 20, res.Savings.Percentage)
	assert.Equal(t, "box", res.Savings.NextTierName)
	assert.Equal(t, 5, res.Savings.QtyRemaining)
}

func TestWholesaleOnlyBelowMinimum(t *testing.T) {
	r := NewResolver(Settings{})
	p := &model.Product{
		RetailPrice:     dec("80"),
		WholesalePrice:  decimal.NewNullDecimal(dec("50")),
		MinWholesaleQty: intPtr(20),
		PriceModel:      model.PriceModelWholesaleOnly,
	}

	_, err := r.ResolvePrice(p, model.CatalogRetail, 15)

	var below *BelowMinimumQuantityError
	require.True(t, errors.As(err, &below))
	assert.Equal(t, 20, below.Required)
	assert.Equal(t, 15, below.Requested)

	res, err := r.ResolvePrice(p, model.CatalogRetail, 20)
	require.NoError(t, err)
	assert.True(t, res.UnitPrice.Equal(dec("50")))
	assert.Equal(t, 20, res.MinQtyForPrice)
}

func TestWholesaleOnlyDefaultsFallBackIndependently(t *testing.T) {
	r := NewResolver(Settings{})

	noMinimum := &model.Product{
		RetailPrice:    dec("80"),
		WholesalePrice: decimal.NewNullDecimal(dec("50")),
		PriceModel:     model.PriceModelWholesaleOnly,
	}
	res, err := r.ResolvePrice(noMinimum, model.CatalogWholesale, 1)
	require.NoError(t, err)
	assert.True(t, res.UnitPrice.Equal(dec("50")))
	assert.Equal(t, 1, res.MinQtyForPrice)
	assert.Equal(t, SourceWholesale, res.Source)

	noPrice := &model.Product{
		RetailPrice:     dec("80"),
		MinWholesaleQty: intPtr(5),
		PriceModel:      model.PriceModelWholesaleOnly,
	}
	res, err = r.ResolvePrice(noPrice, model.CatalogWholesale, 5)
	require.NoError(t, err)
	assert.True(t, res.UnitPrice.Equal(dec("80")))
	assert.Equal(t, 5, res.MinQtyForPrice)
	assert.Equal(t, SourceRetail, res.Source)
	assert.Nil(t, res.Savings)

	_, err = r.ResolvePrice(noPrice, model.CatalogWholesale, 4)
	var below *BelowMinimumQuantityError
	require.ErrorAs(t, err, &below)
	assert.Equal(t, 5, below.Required)
}

func TestGradualSelectsHighestQualifyingTier(t *testing.T) {
	r := NewResolver(Settings{GradualWholesaleEnabled: true})
	cases := []struct {
		qty      int
		price    string
		tier     string
		next     string
		remain   int
		nextPerc int
	}{
		{qty: 1, price: "50", tier: "", next: "box", remain: 49, nextPerc: 30},
		{qty: 10, price: "42.50", tier: "pack", next: "box", remain: 40, nextPerc: 30},
		{qty: 49, price: "42.50", tier: "pack", next: "box", remain: 1, nextPerc: 30},
		{qty: 500, price: "35", tier: "box", next: "box", remain: 0, nextPerc: 30},
	}
	for _, tc := range cases {
		res, err := r.ResolvePrice(gradualProduct(), model.CatalogRetail, tc.qty)
		require.NoError(t, err)
		assert.True(t, res.UnitPrice.Equal(dec(tc.price)), "qty=%d got %s", tc.qty, res.UnitPrice)
		assert.Equal(t, tc.tier, res.TierName)
		require.NotNil(t, res.Savings)
		assert.Equal(t, tc.next, res.Savings.NextTierName)
		assert.Equal(t, tc.remain, res.Savings.QtyRemaining)
		assert.Equal(t, tc.nextPerc, res.Savings.Percentage)
	}
}

func TestGradualDisabledUsesRetail(t *testing.T) {
	r := NewResolver(Settings{GradualWholesaleEnabled: false})

	res, err := r.ResolvePrice(gradualProduct(), model.CatalogWholesale, 100)
	require.NoError(t, err)
	assert.True(t, res.UnitPrice.Equal(dec("50")))
	assert.Nil(t, res.Savings)
}

func TestResolvePriceDoesNotMutateTiers(t *testing.T) {
	r := NewResolver(Settings{GradualWholesaleEnabled: true})
	p := gradualProduct()
	before := append([]model.PriceTier(nil), p.PriceTiers...)

	_, err := r.ResolvePrice(p, model.CatalogRetail, 60)
	require.NoError(t, err)
	assert.Equal(t, before, p.PriceTiers)
}

func TestInvalidInputs(t *testing.T) {
	r := NewResolver(Settings{})

	_, err := r.ResolvePrice(&model.Product{RetailPrice: decimal.Zero, PriceModel: model.PriceModelRetailOnly}, model.CatalogRetail, 1)
	assert.ErrorIs(t, err, ErrInvalidProductPrice)

	_, err = r.ResolvePrice(&model.Product{RetailPrice: dec("-1")}, model.CatalogRetail, 1)
	assert.ErrorIs(t, err, ErrInvalidProductPrice)

	_, err = r.ResolvePrice(nil, model.CatalogRetail, 1)
	assert.ErrorIs(t, err, ErrInvalidProductPrice)

	_, err = r.ResolvePrice(hybridProduct(), model.CatalogRetail, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestChargedPriceKeepsPrecision(t *testing.T) {
	r := NewResolver(Settings{})
	p := &model.Product{
		RetailPrice:     dec("10.005"),
		WholesalePrice:  decimal.NewNullDecimal(dec("6.6667")),
		MinWholesaleQty: intPtr(1),
		PriceModel:      model.PriceModelHybrid,
	}

	res, err := r.ResolvePrice(p, model.CatalogWholesale, 1)
	require.NoError(t, err)
	assert.Equal(t, "6.6667", res.UnitPrice.String())
	assert.Equal(t, 33, res.Savings.Percentage)
}

func TestDiscountPercentage(t *testing.T) {
	assert.Equal(t, 0, DiscountPercentage(decimal.Zero, dec("5")))
	assert.Equal(t, 30, DiscountPercentage(dec("100"), dec("70")))
	assert.Equal(t, 33, DiscountPercentage(dec("3"), dec("2")))
	assert.Equal(t, 67, DiscountPercentage(dec("3"), dec("1")))
}

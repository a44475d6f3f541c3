package usecase

import (
	"strings"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product/dto"
)

// validateProduct checks the write-time invariants and returns the
// normalized price model. An empty model means retail_only.
func validateProduct(input *dto.CreateProductInput) (model.PriceModel, error) {
	if strings.TrimSpace(input.Name) == "" {
		return "", product.ErrNameRequired
	}
	if !input.RetailPrice.IsPositive() {
		return "", product.ErrInvalidRetailPrice
	}
	if input.Stock < 0 && !input.AllowNegativeStock {
		return "", product.ErrNegativeStock
	}

	pm := model.PriceModel(strings.ToLower(strings.TrimSpace(input.PriceModel)))
	if pm == "" {
		pm = model.PriceModelRetailOnly
	}
	if !pm.Valid() {
		return "", product.ErrInvalidPriceModel
	}

	if input.WholesalePrice.Valid && input.WholesalePrice.Decimal.IsNegative() {
		return "", product.ErrInvalidWholesale
	}
	if input.MinWholesaleQty != nil && *input.MinWholesaleQty < 1 {
		return "", product.ErrInvalidWholesale
	}

	switch pm {
	case model.PriceModelWholesaleOnly:
		if !input.WholesalePrice.Valid || input.MinWholesaleQty == nil {
			return "", product.ErrWholesaleIncomplete
		}
	case model.PriceModelHybrid:
		if !input.WholesalePrice.Valid {
			return "", product.ErrWholesaleIncomplete
		}
	}
	return pm, nil
}

// validateTiers expects tiers sorted by TierOrder.
func validateTiers(tiers []model.PriceTier) error {
	prevMin := 0
	for i, t := range tiers {
		if t.TierOrder < 1 || !t.Price.IsPositive() || t.MinQty < 1 || t.TierName == "" {
			return product.ErrInvalidTiers
		}
		if i > 0 && t.TierOrder == tiers[i-1].TierOrder {
			return product.ErrInvalidTiers
		}
		if t.MinQty <= prevMin {
			return product.ErrInvalidTiers
		}
		prevMin = t.MinQty
	}
	return nil
}

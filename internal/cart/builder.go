package cart

import (
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
)

const defaultVariationKey = "default"

// Builder turns an add-to-cart action into a normalized cart line.
type Builder struct {
	resolver *pricing.Resolver
}

func NewBuilder(resolver *pricing.Resolver) *Builder {
	return &Builder{resolver: resolver}
}

// LineID is the merge key for a product and optional variation.
func LineID(productID string, variation *model.ProductVariation) string {
	if variation == nil {
		return productID + "-" + defaultVariationKey
	}
	return productID + "-" + variation.ID
}

// BuildCartItem validates the request and prices it at the committed
// quantity. Neither p nor variation is modified.
func (b *Builder) BuildCartItem(p *model.Product, catalog model.CatalogType, quantity int, variation *model.ProductVariation) (*model.CartLineItem, error) {
	if quantity < 1 {
		return nil, pricing.ErrInvalidQuantity
	}
	if p == nil {
		return nil, ErrProductUnavailable
	}

	if variation == nil && p.HasVariations() {
		return nil, ErrVariationRequired
	}
	if variation != nil && variation.ProductID != "" && variation.ProductID != p.ID {
		return nil, ErrVariationNotFound
	}

	available := p.Stock
	if variation != nil {
		available = variation.Stock
	}
	if !p.AllowNegativeStock && quantity > available {
		if available < 0 {
			available = 0
		}
		return nil, &InsufficientStockError{Available: available, Requested: quantity}
	}

	if p.PriceModel == model.PriceModelWholesaleOnly {
		if minQty := pricing.WholesaleMinimum(p); quantity < minQty {
			return nil, &pricing.BelowMinimumQuantityError{Required: minQty, Requested: quantity}
		}
	}

	res, err := b.resolver.ResolvePrice(p, catalog, quantity)
	if err != nil {
		return nil, err
	}

	unitPrice := res.UnitPrice
	originalPrice := p.RetailPrice
	var lineVariation *model.ProductVariation
	if variation != nil {
		unitPrice = unitPrice.Add(variation.PriceAdjustment)
		originalPrice = originalPrice.Add(variation.PriceAdjustment)
		v := *variation
		lineVariation = &v
	}
	if unitPrice.IsNegative() {
		return nil, pricing.ErrInvalidProductPrice
	}

	return &model.CartLineItem{
		ID:               LineID(p.ID, variation),
		Product:          *p,
		Variation:        lineVariation,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		OriginalPrice:    originalPrice,
		CatalogType:      catalog,
		IsWholesalePrice: res.IsDiscounted(),
	}, nil
}

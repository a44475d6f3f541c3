// Package pricing resolves the unit price a shopper is charged for a product
// at a given quantity, and the advisory savings shown next to it.
package pricing

import (
	"sort"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/shopspring/decimal"
)

// Source tells which price list produced a resolution.
type Source string

const (
	SourceRetail    Source = "retail"
	SourceWholesale Source = "wholesale"
	SourceTier      Source = "tier"
)

// Settings are the store-level switches that affect pricing.
type Settings struct {
	GradualWholesaleEnabled bool
}

type Resolution struct {
	UnitPrice      decimal.Decimal `json:"unit_price"`
	MinQtyForPrice int             `json:"min_qty_for_price"`
	Source         Source          `json:"source"`
	TierName       string          `json:"tier_name,omitempty"`
	Savings        *Savings        `json:"savings,omitempty"`
}

// IsDiscounted reports whether the unit price came from a non-retail list.
func (r *Resolution) IsDiscounted() bool {
	return r.Source != SourceRetail
}

// Savings is display-only. Amount is the per-unit difference to the retail
// price; QtyRemaining is zero when the saving already applies.
type Savings struct {
	Amount       decimal.Decimal `json:"amount"`
	Percentage   int             `json:"percentage"`
	NextTierName string          `json:"next_tier_name"`
	QtyRemaining int             `json:"qty_remaining"`
}

type Resolver struct {
	settings Settings
}

func NewResolver(settings Settings) *Resolver {
	return &Resolver{settings: settings}
}

// offer is a discounted price that becomes available from MinQty units.
type offer struct {
	name   string
	price  decimal.Decimal
	minQty int
}

// ResolvePrice returns the unit price charged for quantity units of p in the
// given catalog. It never mutates p.
func (r *Resolver) ResolvePrice(p *model.Product, catalog model.CatalogType, quantity int) (*Resolution, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if p == nil || !p.RetailPrice.IsPositive() {
		return nil, ErrInvalidProductPrice
	}

	res := &Resolution{
		UnitPrice:      p.RetailPrice,
		MinQtyForPrice: 1,
		Source:         SourceRetail,
	}

	switch p.PriceModel {
	case model.PriceModelWholesaleOnly:
		// Price and minimum fall back independently.
		if p.WholesalePrice.Valid {
			res.UnitPrice = p.WholesalePrice.Decimal
			res.Source = SourceWholesale
			res.TierName = wholesaleTierName
		}
		res.MinQtyForPrice = WholesaleMinimum(p)
		if quantity < res.MinQtyForPrice {
			return nil, &BelowMinimumQuantityError{Required: res.MinQtyForPrice, Requested: quantity}
		}
	case model.PriceModelGradualWholesale:
		if r.settings.GradualWholesaleEnabled {
			if t := selectTier(p.PriceTiers, quantity); t != nil {
				res.UnitPrice = t.Price
				res.MinQtyForPrice = tierMinQty(t)
				res.Source = SourceTier
				res.TierName = t.TierName
			}
		}
	case model.PriceModelHybrid:
		if w, ok := wholesaleOffer(p); ok && catalog == model.CatalogWholesale && quantity >= w.minQty {
			res.UnitPrice = w.price
			res.MinQtyForPrice = w.minQty
			res.Source = SourceWholesale
			res.TierName = w.name
		}
	}

	res.Savings = r.savings(p, catalog, quantity, res)
	return res, nil
}

const wholesaleTierName = "wholesale"

// WholesaleMinimum is the minimum order quantity for the wholesale price,
// defaulting to 1.
func WholesaleMinimum(p *model.Product) int {
	if p.MinWholesaleQty == nil || *p.MinWholesaleQty < 1 {
		return 1
	}
	return *p.MinWholesaleQty
}

// wholesaleOffer returns the wholesale price of p, if it has one.
func wholesaleOffer(p *model.Product) (offer, bool) {
	if !p.WholesalePrice.Valid {
		return offer{}, false
	}
	return offer{name: wholesaleTierName, price: p.WholesalePrice.Decimal, minQty: WholesaleMinimum(p)}, true
}

// selectTier picks the highest-order active tier above the retail baseline
// whose minimum is met.
func selectTier(tiers []model.PriceTier, quantity int) *model.PriceTier {
	var best *model.PriceTier
	for i := range tiers {
		t := &tiers[i]
		if t.TierOrder <= 1 || !t.IsActive || tierMinQty(t) > quantity {
			continue
		}
		if best == nil || t.TierOrder > best.TierOrder {
			best = t
		}
	}
	return best
}

func tierMinQty(t *model.PriceTier) int {
	if t.MinQty < 1 {
		return 1
	}
	return t.MinQty
}

// offers lists the discounted prices reachable in this catalog, ordered by
// minimum quantity.
func (r *Resolver) offers(p *model.Product, catalog model.CatalogType) []offer {
	var out []offer
	switch p.PriceModel {
	case model.PriceModelHybrid:
		if catalog != model.CatalogWholesale {
			return nil
		}
		if w, ok := wholesaleOffer(p); ok {
			out = append(out, w)
		}
	case model.PriceModelGradualWholesale:
		if !r.settings.GradualWholesaleEnabled {
			return nil
		}
		for _, t := range p.PriceTiers {
			if t.TierOrder <= 1 || !t.IsActive {
				continue
			}
			out = append(out, offer{name: t.TierName, price: t.Price, minQty: tierMinQty(&t)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].minQty < out[j].minQty })
	return out
}

func (r *Resolver) savings(p *model.Product, catalog model.CatalogType, quantity int, res *Resolution) *Savings {
	retail := p.RetailPrice
	if p.WholesalePrice.Valid && p.WholesalePrice.Decimal.GreaterThanOrEqual(retail) {
		return nil
	}

	var best *offer
	for _, o := range r.offers(p, catalog) {
		if o.minQty <= quantity || !o.price.LessThan(res.UnitPrice) || !o.price.LessThan(retail) {
			continue
		}
		if best == nil || o.price.LessThan(best.price) {
			best = &o
		}
	}
	if best != nil {
		return &Savings{
			Amount:       retail.Sub(best.price),
			Percentage:   DiscountPercentage(retail, best.price),
			NextTierName: best.name,
			QtyRemaining: best.minQty - quantity,
		}
	}

	if res.UnitPrice.LessThan(retail) {
		return &Savings{
			Amount:       retail.Sub(res.UnitPrice),
			Percentage:   DiscountPercentage(retail, res.UnitPrice),
			NextTierName: res.TierName,
		}
	}
	return nil
}

// DiscountPercentage is (retail - discounted) / retail * 100 rounded to the
// nearest integer. A non-positive retail price yields 0.
func DiscountPercentage(retail, discounted decimal.Decimal) int {
	if !retail.IsPositive() {
		return 0
	}
	pct := retail.Sub(discounted).Div(retail).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

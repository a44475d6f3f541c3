package model

import "github.com/shopspring/decimal"

// PriceModel selects how a product's price tiers apply.
type PriceModel string

const (
	PriceModelRetailOnly       PriceModel = "retail_only"
	PriceModelWholesaleOnly    PriceModel = "wholesale_only"
	PriceModelHybrid           PriceModel = "hybrid"
	PriceModelGradualWholesale PriceModel = "gradual_wholesale"
)

func (m PriceModel) Valid() bool {
	switch m {
	case PriceModelRetailOnly, PriceModelWholesaleOnly, PriceModelHybrid, PriceModelGradualWholesale:
		return true
	}
	return false
}

// CatalogType is the price list a shopper browses with.
type CatalogType string

const (
	CatalogRetail    CatalogType = "retail"
	CatalogWholesale CatalogType = "wholesale"
)

func (c CatalogType) Valid() bool {
	return c == CatalogRetail || c == CatalogWholesale
}

type Product struct {
	BaseModel
	StoreID            string              `db:"store_id" json:"store_id"`
	Name               string              `db:"name" json:"name"`
	Description        *string             `db:"description" json:"description"`
	SKU                *string             `db:"sku" json:"sku"`
	Category           string              `db:"category" json:"category"`
	ImageURL           *string             `db:"image_url" json:"image_url"`
	RetailPrice        decimal.Decimal     `db:"retail_price" json:"retail_price"`
	WholesalePrice     decimal.NullDecimal `db:"wholesale_price" json:"wholesale_price"`
	MinWholesaleQty    *int                `db:"min_wholesale_qty" json:"min_wholesale_qty"`
	Stock              int                 `db:"stock" json:"stock"`
	AllowNegativeStock bool                `db:"allow_negative_stock" json:"allow_negative_stock"`
	IsFeatured         bool                `db:"is_featured" json:"is_featured"`
	IsActive           bool                `db:"is_active" json:"is_active"`
	PriceModel         PriceModel          `db:"price_model" json:"price_model"`
	Variations         []ProductVariation  `db:"-" json:"variations"`
	PriceTiers         []PriceTier         `db:"-" json:"price_tiers"`
}

// HasVariations reports whether a variation must be picked before adding to cart.
func (p *Product) HasVariations() bool {
	return len(p.Variations) > 0
}

// FindVariation returns the variation with the given id, or nil.
func (p *Product) FindVariation(id string) *ProductVariation {
	for i := range p.Variations {
		if p.Variations[i].ID == id {
			return &p.Variations[i]
		}
	}
	return nil
}

type ProductVariation struct {
	BaseModel
	ProductID       string          `db:"product_id" json:"product_id"`
	Color           *string         `db:"color" json:"color"`
	Size            *string         `db:"size" json:"size"`
	Material        *string         `db:"material" json:"material"`
	PriceAdjustment decimal.Decimal `db:"price_adjustment" json:"price_adjustment"`
	Stock           int             `db:"stock" json:"stock"`
	ImageURL        *string         `db:"image_url" json:"image_url"`
	SKU             *string         `db:"sku" json:"sku"`
	IsActive        bool            `db:"is_active" json:"is_active"`
}

// PriceTier is one step of a gradual wholesale curve. TierOrder 1 is the retail baseline.
type PriceTier struct {
	ID        string          `db:"id" json:"id"`
	ProductID string          `db:"product_id" json:"product_id"`
	TierOrder int             `db:"tier_order" json:"tier_order"`
	TierName  string          `db:"tier_name" json:"tier_name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	MinQty    int             `db:"min_qty" json:"min_qty"`
	IsActive  bool            `db:"is_active" json:"is_active"`
}

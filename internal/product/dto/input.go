package dto

import (
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	StoreID            string              `json:"-"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	SKU                string              `json:"sku"`
	Category           string              `json:"category"`
	ImageURL           string              `json:"image_url"`
	RetailPrice        decimal.Decimal     `json:"retail_price"`
	WholesalePrice     decimal.NullDecimal `json:"wholesale_price"`
	MinWholesaleQty    *int                `json:"min_wholesale_qty"`
	Stock              int                 `json:"stock"`
	AllowNegativeStock bool                `json:"allow_negative_stock"`
	IsFeatured         bool                `json:"is_featured"`
	PriceModel         string              `json:"price_model"`
}

type UpdateProductInput struct {
	ID string `json:"id"`
	CreateProductInput
	IsActive bool `json:"is_active"`
}

type CreateVariationInput struct {
	StoreID         string          `json:"-"`
	ProductID       string          `json:"product_id"`
	Color           string          `json:"color"`
	Size            string          `json:"size"`
	Material        string          `json:"material"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	Stock           int             `json:"stock"`
	ImageURL        string          `json:"image_url"`
	SKU             string          `json:"sku"`
}

type PriceTierInput struct {
	TierOrder int             `json:"tier_order"`
	TierName  string          `json:"tier_name"`
	Price     decimal.Decimal `json:"price"`
	MinQty    int             `json:"min_qty"`
	IsActive  bool            `json:"is_active"`
}

type SetPriceTiersInput struct {
	StoreID   string           `json:"-"`
	ProductID string           `json:"product_id"`
	Tiers     []PriceTierInput `json:"tiers"`
}

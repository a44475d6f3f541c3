package dto

import (
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
	"github.com/shopspring/decimal"
)

type ListQuery struct {
	StoreID      string              `json:"-"`
	Catalog      model.CatalogType   `json:"catalog"`
	Category     string              `json:"category"`
	Search       string              `json:"search"`
	FeaturedOnly bool                `json:"featured_only"`
	InStockOnly  bool                `json:"in_stock_only"`
	MinPrice     decimal.NullDecimal `json:"min_price"`
	MaxPrice     decimal.NullDecimal `json:"max_price"`
	SortBy       string              `json:"sort_by"`
	Page         int                 `json:"page"`
	PageSize     int                 `json:"page_size"`
}

type QuoteInput struct {
	StoreID     string            `json:"-"`
	Catalog     model.CatalogType `json:"catalog"`
	ProductID   string            `json:"product_id"`
	VariationID string            `json:"variation_id"`
	Quantity    int               `json:"quantity"`
}

type Quote struct {
	ProductID     string             `json:"product_id"`
	VariationID   string             `json:"variation_id,omitempty"`
	Quantity      int                `json:"quantity"`
	UnitPrice     decimal.Decimal    `json:"unit_price"`
	OriginalPrice decimal.Decimal    `json:"original_price"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Resolution    pricing.Resolution `json:"resolution"`
}

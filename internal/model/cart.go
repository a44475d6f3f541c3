package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineItem is one mergeable cart line. ID is "{productID}-{variationID|default}".
type CartLineItem struct {
	ID               string            `json:"id"`
	Product          Product           `json:"product"`
	Variation        *ProductVariation `json:"variation,omitempty"`
	Quantity         int               `json:"quantity"`
	UnitPrice        decimal.Decimal   `json:"unit_price"`
	OriginalPrice    decimal.Decimal   `json:"original_price"`
	CatalogType      CatalogType       `json:"catalog_type"`
	IsWholesalePrice bool              `json:"is_wholesale_price"`
}

func (l *CartLineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l *CartLineItem) OriginalSubtotal() decimal.Decimal {
	return l.OriginalPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	SessionID   string         `json:"session_id"`
	StoreID     string         `json:"store_id"`
	CatalogType CatalogType    `json:"catalog_type"`
	Items       []CartLineItem `json:"items"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type CartTotals struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	OriginalSubtotal decimal.Decimal `json:"original_subtotal"`
	Savings          decimal.Decimal `json:"savings"`
	ItemCount        int             `json:"item_count"`
	LineCount        int             `json:"line_count"`
}

package model

import "time"

type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	StoreID        string    `db:"store_id" json:"store_id"`
	ProductID      string    `db:"product_id" json:"product_id"`
	VariationID    *string   `db:"variation_id" json:"variation_id,omitempty"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int       `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type,omitempty"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id,omitempty"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedBy      *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// StockLevel is the current stock of a product or one of its variations.
type StockLevel struct {
	StoreID            string  `db:"store_id" json:"store_id"`
	ProductID          string  `db:"product_id" json:"product_id"`
	VariationID        *string `db:"variation_id" json:"variation_id,omitempty"`
	Quantity           int     `db:"quantity" json:"quantity"`
	AllowNegativeStock bool    `db:"allow_negative_stock" json:"allow_negative_stock"`
}

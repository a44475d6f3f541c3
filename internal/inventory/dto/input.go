package dto

import "time"

type AdjustStockInput struct {
	StoreID        string  `json:"-"`
	ProductID      string  `json:"product_id"`
	VariationID    *string `json:"variation_id"`
	QuantityChange int     `json:"quantity_change"`
	Reason         string  `json:"reason"`
	ReferenceID    string  `json:"reference_id"`
	ReferenceType  string  `json:"reference_type"` // manual_adjustment, sale, return
	UserID         string  `json:"-"`
}

type MovementFilters struct {
	StoreID      string     `json:"-"`
	ProductID    string     `json:"product_id"`
	VariationID  string     `json:"variation_id"`
	MovementType string     `json:"movement_type"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Page         int        `json:"page"`
	PageSize     int        `json:"page_size"`
}

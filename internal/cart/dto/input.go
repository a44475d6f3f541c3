package dto

import "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"

type AddItemInput struct {
	StoreID     string `json:"-"`
	SessionID   string `json:"session_id"`
	ProductID   string `json:"product_id"`
	VariationID string `json:"variation_id"`
	Quantity    int    `json:"quantity"`
}

type UpdateQuantityInput struct {
	StoreID   string `json:"-"`
	SessionID string `json:"session_id"`
	LineID    string `json:"line_id"`
	Quantity  int    `json:"quantity"`
}

type CartView struct {
	Cart   *model.Cart      `json:"cart"`
	Totals model.CartTotals `json:"totals"`
}

package dto

type ProductFilters struct {
	StoreID     string `json:"-"`
	Category    string `json:"category"`
	IsActive    *bool  `json:"is_active"`
	SearchQuery string `json:"search"`     // name or sku
	SortBy      string `json:"sort_by"`    // name, price, created_at
	SortOrder   string `json:"sort_order"` // asc, desc
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

package dto

type UpdateSettingsInput struct {
	StoreID                 string `json:"-"`
	RetailCatalogEnabled    bool   `json:"retail_catalog_enabled"`
	WholesaleCatalogEnabled bool   `json:"wholesale_catalog_enabled"`
	GradualWholesaleEnabled bool   `json:"gradual_wholesale_enabled"`
	Template                string `json:"template"`
	Currency                string `json:"currency"`
}

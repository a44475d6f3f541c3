package model

import "time"

// Template is the storefront layout variant.
type Template string

const (
	TemplateMinimal    Template = "minimal"
	TemplateModern     Template = "modern"
	TemplateElegant    Template = "elegant"
	TemplateIndustrial Template = "industrial"
)

func (t Template) Valid() bool {
	switch t {
	case TemplateMinimal, TemplateModern, TemplateElegant, TemplateIndustrial:
		return true
	}
	return false
}

type StoreSettings struct {
	StoreID                 string    `db:"store_id" json:"store_id"`
	RetailCatalogEnabled    bool      `db:"retail_catalog_enabled" json:"retail_catalog_enabled"`
	WholesaleCatalogEnabled bool      `db:"wholesale_catalog_enabled" json:"wholesale_catalog_enabled"`
	GradualWholesaleEnabled bool      `db:"gradual_wholesale_enabled" json:"gradual_wholesale_enabled"`
	Template                Template  `db:"template" json:"template"`
	Currency                string    `db:"currency" json:"currency"`
	UpdatedAt               time.Time `db:"updated_at" json:"updated_at"`
}

// CatalogEnabled reports whether the store publishes the given catalog.
func (s *StoreSettings) CatalogEnabled(c CatalogType) bool {
	switch c {
	case CatalogRetail:
		return s.RetailCatalogEnabled
	case CatalogWholesale:
		return s.WholesaleCatalogEnabled
	}
	return false
}

// DefaultStoreSettings is used for stores that never saved settings.
func DefaultStoreSettings(storeID string) *StoreSettings {
	return &StoreSettings{
		StoreID:              storeID,
		RetailCatalogEnabled: true,
		Template:             TemplateModern,
		Currency:             "BRL",
	}
}

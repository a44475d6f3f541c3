// Package catalog serves the public storefront listing: priced, filtered
// and sorted products of one store.
package catalog

import (
	"sort"
	"strings"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
	"github.com/shopspring/decimal"
)

type SortBy string

const (
	SortFeatured  SortBy = "featured"
	SortNewest    SortBy = "newest"
	SortName      SortBy = "name"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
)

// Entry is a product as shown in the catalog, with its display price.
type Entry struct {
	Product   model.Product      `json:"product"`
	Price     pricing.Resolution `json:"price"`
	Available int                `json:"available"`
	InStock   bool               `json:"in_stock"`
}

type Filter struct {
	Category     string
	Query        string
	FeaturedOnly bool
	InStockOnly  bool
	MinPrice     decimal.NullDecimal
	MaxPrice     decimal.NullDecimal
}

// Available sums the sellable units of a product. With variations only their
// stock counts.
func Available(p *model.Product) int {
	if !p.HasVariations() {
		return max(p.Stock, 0)
	}
	total := 0
	for _, v := range p.Variations {
		total += max(v.Stock, 0)
	}
	return total
}

// Apply returns the entries matching f. The input slice is not modified.
func Apply(entries []Entry, f Filter) []Entry {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Category != "" && !strings.EqualFold(e.Product.Category, f.Category) {
			continue
		}
		if f.FeaturedOnly && !e.Product.IsFeatured {
			continue
		}
		if f.InStockOnly && !e.InStock {
			continue
		}
		if f.MinPrice.Valid && e.Price.UnitPrice.LessThan(f.MinPrice.Decimal) {
			continue
		}
		if f.MaxPrice.Valid && e.Price.UnitPrice.GreaterThan(f.MaxPrice.Decimal) {
			continue
		}
		if query != "" && !matches(&e.Product, query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matches(p *model.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if p.SKU != nil && strings.Contains(strings.ToLower(*p.SKU), query) {
		return true
	}
	if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), query) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Category), query)
}

// Sort orders entries in place. Ties fall back to newest first, then ID.
func Sort(entries []Entry, by SortBy) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		switch by {
		case SortName:
			an, bn := strings.ToLower(a.Product.Name), strings.ToLower(b.Product.Name)
			if an != bn {
				return an < bn
			}
		case SortPriceAsc:
			if c := a.Price.UnitPrice.Cmp(b.Price.UnitPrice); c != 0 {
				return c < 0
			}
		case SortPriceDesc:
			if c := a.Price.UnitPrice.Cmp(b.Price.UnitPrice); c != 0 {
				return c > 0
			}
		case SortNewest:
		default:
			if a.Product.IsFeatured != b.Product.IsFeatured {
				return a.Product.IsFeatured
			}
		}
		if !a.Product.CreatedAt.Equal(b.Product.CreatedAt) {
			return a.Product.CreatedAt.After(b.Product.CreatedAt)
		}
		return a.Product.ID < b.Product.ID
	})
}

// Page slices entries for a 1-based page. pageSize <= 0 returns everything.
func Page(entries []Entry, page, pageSize int) []Entry {
	if pageSize <= 0 {
		return entries
	}
	if page < 1 {
		page = 1
	}
	// Compare page indexes before multiplying so huge pages cannot overflow.
	if len(entries) == 0 || page-1 > (len(entries)-1)/pageSize {
		return []Entry{}
	}
	start := (page - 1) * pageSize
	end := len(entries)
	if end-start > pageSize {
		end = start + pageSize
	}
	return entries[start:end]
}

// Categories lists distinct product categories in first-seen order.
func Categories(entries []Entry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		c := e.Product.Category
		if c == "" || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		out = append(out, c)
	}
	return out
}

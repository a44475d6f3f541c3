package catalog

import (
	"context"
	"fmt"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/platform/search"
)

const productMapping = `{
	"mappings": {
		"properties": {
			"store_id": { "type": "keyword" },
			"name": { "type": "text" },
			"description": { "type": "text" },
			"sku": { "type": "keyword" },
			"category": { "type": "keyword" },
			"retail_price": { "type": "double" },
			"is_active": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

// SearchIndex mirrors products into Elasticsearch for catalog text search.
type SearchIndex struct {
	client *search.Client
	index  string
}

func NewSearchIndex(client *search.Client, index string) *SearchIndex {
	return &SearchIndex{client: client, index: index}
}

// EnsureIndex creates the index with its mapping if it does not exist.
func (s *SearchIndex) EnsureIndex(ctx context.Context) error {
	return s.client.CreateIndex(ctx, s.index, productMapping)
}

type indexedProduct struct {
	StoreID     string  `json:"store_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Category    string  `json:"category"`
	RetailPrice float64 `json:"retail_price"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}

func (s *SearchIndex) Sync(ctx context.Context, p *model.Product) error {
	doc := indexedProduct{
		StoreID:     p.StoreID,
		Name:        p.Name,
		Category:    p.Category,
		RetailPrice: p.RetailPrice.InexactFloat64(),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.SKU != nil {
		doc.SKU = *p.SKU
	}
	return s.client.Index(ctx, s.index, p.ID, doc)
}

func (s *SearchIndex) Remove(ctx context.Context, id string) error {
	return s.client.Delete(ctx, s.index, id)
}

// Search returns matching active product IDs of a store in relevance order.
func (s *SearchIndex) Search(ctx context.Context, storeID, query string, limit int) ([]string, error) {
	q := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []map[string]any{
					{
						"query_string": map[string]any{
							"query":  fmt.Sprintf("*%s*", query),
							"fields": []string{"name^3", "sku", "category", "description"},
						},
					},
				},
				"filter": []map[string]any{
					{"term": map[string]any{"store_id": storeID}},
					{"term": map[string]any{"is_active": true}},
				},
			},
		},
		"_source": false,
		"size":    limit,
	}

	res, err := s.client.Search(ctx, s.index, q)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

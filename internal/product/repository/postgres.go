package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/platform/postgres"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, store_id, name, description, sku, category, image_url,
            retail_price, wholesale_price, min_wholesale_qty, stock,
            allow_negative_stock, is_featured, is_active, price_model,
            created_at, updated_at
        )
        VALUES (
            :id, :store_id, :name, :description, :sku, :category, :image_url,
            :retail_price, :wholesale_price, :min_wholesale_qty, :stock,
            :allow_negative_stock, :is_featured, :is_active, :price_model,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "product: insert")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.DB.GetContext(ctx, &product, `SELECT * FROM products WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "product: get")
	}

	products := []model.Product{product}
	if err := r.attachChildren(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *PGRepository) FindActiveByStore(ctx context.Context, storeID string) ([]model.Product, error) {
	var products []model.Product
	err := r.DB.SelectContext(ctx, &products,
		`SELECT * FROM products WHERE store_id = $1 AND is_active = TRUE ORDER BY created_at DESC`, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "product: list active")
	}
	if err := r.attachChildren(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// attachChildren loads active variations and all price tiers for products in two queries.
func (r *PGRepository) attachChildren(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	query, args, err := sqlx.In(`
        SELECT * FROM product_variations
        WHERE product_id IN (?) AND is_active = TRUE
        ORDER BY created_at
    `, ids)
	if err != nil {
		return errors.Wrap(err, "product: build variations query")
	}
	var variations []model.ProductVariation
	if err := r.DB.SelectContext(ctx, &variations, r.DB.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "product: load variations")
	}
	for _, v := range variations {
		i := index[v.ProductID]
		products[i].Variations = append(products[i].Variations, v)
	}

	query, args, err = sqlx.In(`
        SELECT * FROM price_tiers
        WHERE product_id IN (?)
        ORDER BY tier_order
    `, ids)
	if err != nil {
		return errors.Wrap(err, "product: build tiers query")
	}
	var tiers []model.PriceTier
	if err := r.DB.SelectContext(ctx, &tiers, r.DB.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "product: load tiers")
	}
	for _, t := range tiers {
		i := index[t.ProductID]
		products[i].PriceTiers = append(products[i].PriceTiers, t)
	}
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{"store_id = :store_id"}
	args := map[string]interface{}{"store_id": f.StoreID}

	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = f.Category
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "product: count")
	}
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			rows.Close()
			return nil, 0, errors.Wrap(err, "product: scan count")
		}
	}
	rows.Close()

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// Whitelisted to keep the ORDER BY injection-free.
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "retail_price"
		default:
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "product: prepare list")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, errors.Wrap(err, "product: list")
	}
	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            sku = :sku,
            category = :category,
            image_url = :image_url,
            retail_price = :retail_price,
            wholesale_price = :wholesale_price,
            min_wholesale_qty = :min_wholesale_qty,
            stock = :stock,
            allow_negative_stock = :allow_negative_stock,
            is_featured = :is_featured,
            is_active = :is_active,
            price_model = :price_model,
            updated_at = :updated_at
        WHERE id = :id AND store_id = :store_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "product: update")
}

func (r *PGRepository) SoftDelete(ctx context.Context, storeID, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND store_id = $2`, id, storeID)
	return errors.Wrap(err, "product: soft delete")
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, storeID, sku, excludeID string) (bool, error) {
	if sku == "" {
		return true, nil
	}
	var count int
	query := `SELECT count(*) FROM products WHERE store_id = $1 AND sku = $2`
	args := []interface{}{storeID, sku}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, errors.Wrap(err, "product: check sku")
	}
	return count == 0, nil
}

func (r *PGRepository) AddVariation(ctx context.Context, v *model.ProductVariation) error {
	query := `
        INSERT INTO product_variations (
            id, product_id, color, size, material, price_adjustment,
            stock, image_url, sku, is_active, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :color, :size, :material, :price_adjustment,
            :stock, :image_url, :sku, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return errors.Wrap(err, "variation: insert")
}

func (r *PGRepository) ListVariations(ctx context.Context, productID string) ([]model.ProductVariation, error) {
	var variations []model.ProductVariation
	err := r.DB.SelectContext(ctx, &variations,
		`SELECT * FROM product_variations WHERE product_id = $1 AND is_active = TRUE ORDER BY created_at`, productID)
	return variations, errors.Wrap(err, "variation: list")
}

func (r *PGRepository) DeleteVariation(ctx context.Context, productID, variationID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE product_variations SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND product_id = $2 AND is_active = TRUE`,
		variationID, productID)
	if err != nil {
		return false, errors.Wrap(err, "variation: delete")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "variation: rows affected")
	}
	return n > 0, nil
}

func (r *PGRepository) ReplaceTiers(ctx context.Context, productID string, tiers []model.PriceTier) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM price_tiers WHERE product_id = $1`, productID); err != nil {
			return errors.Wrap(err, "tiers: clear")
		}
		if len(tiers) == 0 {
			return nil
		}
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO price_tiers (id, product_id, tier_order, tier_name, price, min_qty, is_active)
            VALUES (:id, :product_id, :tier_order, :tier_name, :price, :min_qty, :is_active)
        `, tiers)
		return errors.Wrap(err, "tiers: insert")
	})
}

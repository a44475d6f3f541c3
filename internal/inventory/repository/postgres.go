package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/platform/postgres"
	"github.com/pkg/errors"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetLevel(ctx context.Context, storeID, productID string, variationID *string) (*model.StockLevel, error) {
	var level model.StockLevel
	var err error
	if variationID == nil {
		err = r.DB.GetContext(ctx, &level, `
            SELECT store_id, id AS product_id, stock AS quantity, allow_negative_stock
            FROM products
            WHERE id = $1 AND store_id = $2`,
			productID, storeID)
	} else {
		err = r.DB.GetContext(ctx, &level, `
            SELECT p.store_id, p.id AS product_id, v.id AS variation_id,
                   v.stock AS quantity, p.allow_negative_stock
            FROM product_variations v
            JOIN products p ON p.id = v.product_id
            WHERE v.id = $1 AND p.id = $2 AND p.store_id = $3 AND v.is_active = TRUE`,
			*variationID, productID, storeID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "inventory: get level")
	}
	return &level, nil
}

func (r *PGRepository) ApplyMovement(ctx context.Context, m *model.StockMovement) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		var res sql.Result
		var err error
		// The stock must still hold the value the movement was computed from.
		if m.VariationID == nil {
			res, err = tx.ExecContext(ctx,
				`UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2 AND store_id = $3 AND stock = $4`,
				m.QuantityAfter, m.ProductID, m.StoreID, m.QuantityBefore)
		} else {
			res, err = tx.ExecContext(ctx,
				`UPDATE product_variations SET stock = $1, updated_at = NOW() WHERE id = $2 AND product_id = $3 AND stock = $4`,
				m.QuantityAfter, *m.VariationID, m.ProductID, m.QuantityBefore)
		}
		if err != nil {
			return errors.Wrap(err, "inventory: update stock")
		}
		if n, err := res.RowsAffected(); err != nil {
			return errors.Wrap(err, "inventory: update stock")
		} else if n == 0 {
			return inventory.ErrBusy
		}

		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO stock_movements (
                id, store_id, product_id, variation_id,
                movement_type, quantity_change, quantity_before, quantity_after,
                reference_type, reference_id, notes, created_by, created_at
            )
            VALUES (
                :id, :store_id, :product_id, :variation_id,
                :movement_type, :quantity_change, :quantity_before, :quantity_after,
                :reference_type, :reference_id, :notes, :created_by, :created_at
            )`, m)
		return errors.Wrap(err, "inventory: log movement")
	})
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{"store_id = :store_id"}
	args := map[string]interface{}{"store_id": f.StoreID}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.VariationID != "" {
		conditions = append(conditions, "variation_id = :variation_id")
		args["variation_id"] = f.VariationID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM stock_movements"+whereClause, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "inventory: count movements")
	}
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "inventory: count movements")
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		page := max(f.Page, 1)
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "inventory: list movements")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, 0, errors.Wrap(err, "inventory: list movements")
	}
	return items, count, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByStore(ctx context.Context, storeID string) (*model.StoreSettings, error) {
	var s model.StoreSettings
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM store_settings WHERE store_id = $1`, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) Upsert(ctx context.Context, s *model.StoreSettings) error {
	query := `
        INSERT INTO store_settings (
            store_id, retail_catalog_enabled, wholesale_catalog_enabled,
            gradual_wholesale_enabled, template, currency, updated_at
        )
        VALUES (
            :store_id, :retail_catalog_enabled, :wholesale_catalog_enabled,
            :gradual_wholesale_enabled, :template, :currency, :updated_at
        )
        ON CONFLICT (store_id) DO UPDATE SET
            retail_catalog_enabled = EXCLUDED.retail_catalog_enabled,
            wholesale_catalog_enabled = EXCLUDED.wholesale_catalog_enabled,
            gradual_wholesale_enabled = EXCLUDED.gradual_wholesale_enabled,
            template = EXCLUDED.template,
            currency = EXCLUDED.currency,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return err
}

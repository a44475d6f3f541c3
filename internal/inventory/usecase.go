package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
)

var (
	ErrNotFound          = errors.New("product or variation not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrZeroChange        = errors.New("quantity change must not be zero")
	ErrBusy              = errors.New("stock is being updated, try again")
)

type UseCase interface {
	GetStock(ctx context.Context, storeID, productID, variationID string) (*model.StockLevel, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockLevel, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}

// Locker serializes writers of the same stock row across instances.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

// CatalogCache drops the cached public listings of a store.
type CatalogCache interface {
	Invalidate(ctx context.Context, storeID string) error
}

package inventory

import (
	"context"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
)

type Repository interface {
	// GetLevel reads the stock of a product, or of one of its variations when
	// variationID is set. It returns nil, nil when nothing matches.
	GetLevel(ctx context.Context, storeID, productID string, variationID *string) (*model.StockLevel, error)

	// ApplyMovement writes the movement's QuantityAfter as the new stock and
	// records the movement in one transaction.
	ApplyMovement(ctx context.Context, movement *model.StockMovement) error

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}

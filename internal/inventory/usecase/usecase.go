package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"go.uber.org/zap"
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

type inventoryUseCase struct {
	repo   inventory.Repository
	locker inventory.Locker
	cache  inventory.CatalogCache
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, locker inventory.Locker, cache inventory.CatalogCache, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		locker: locker,
		cache:  cache,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetStock(ctx context.Context, storeID, productID, variationID string) (*model.StockLevel, error) {
	level, err := uc.repo.GetLevel(ctx, storeID, productID, optional(variationID))
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, inventory.ErrNotFound
	}
	return level, nil
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockLevel, error) {
	if input.QuantityChange == 0 {
		return nil, inventory.ErrZeroChange
	}

	lockKey := fmt.Sprintf("lock:stock:%s:%s", input.StoreID, input.ProductID)
	if input.VariationID != nil {
		lockKey += ":" + *input.VariationID
	}
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.String("key", lockKey), zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockBackoff):
		}
	}
	if !acquired {
		return nil, inventory.ErrBusy
	}
	defer func() {
		if err := uc.locker.ReleaseLock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.logger.Warn("failed to release stock lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	level, err := uc.repo.GetLevel(ctx, input.StoreID, input.ProductID, input.VariationID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, inventory.ErrNotFound
	}

	after := level.Quantity + input.QuantityChange
	if input.QuantityChange < 0 && after < 0 && !level.AllowNegativeStock {
		return nil, inventory.ErrInsufficientStock
	}

	movementType := "in"
	if input.QuantityChange < 0 {
		movementType = "out"
	}
	referenceType := input.ReferenceType
	if referenceType == "" {
		referenceType = "manual_adjustment"
	}
	var createdBy *string
	if input.UserID != "" && input.UserID != "unknown" {
		createdBy = &input.UserID
	}

	movement := &model.StockMovement{
		ID:             uuid.New().String(),
		StoreID:        input.StoreID,
		ProductID:      input.ProductID,
		VariationID:    input.VariationID,
		MovementType:   movementType,
		QuantityChange: input.QuantityChange,
		QuantityBefore: level.Quantity,
		QuantityAfter:  after,
		ReferenceType:  &referenceType,
		ReferenceID:    optional(input.ReferenceID),
		Notes:          input.Reason,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.ApplyMovement(ctx, movement); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		go func() {
			if err := uc.cache.Invalidate(context.Background(), input.StoreID); err != nil {
				uc.logger.Warn("failed to invalidate catalog cache", zap.String("store_id", input.StoreID), zap.Error(err))
			}
		}()
	}

	uc.logger.Info("stock adjusted",
		zap.String("store_id", input.StoreID),
		zap.String("product_id", input.ProductID),
		zap.Int("before", movement.QuantityBefore),
		zap.Int("after", movement.QuantityAfter),
		zap.String("reference_type", referenceType),
	)

	level.Quantity = after
	return level, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

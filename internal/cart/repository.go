package cart

import (
	"context"
	"time"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
)

type Repository interface {
	// Get returns nil, nil when the session has no cart.
	Get(ctx context.Context, storeID, sessionID string) (*model.Cart, error)
	Save(ctx context.Context, c *model.Cart, ttl time.Duration) error
	Delete(ctx context.Context, storeID, sessionID string) error
}

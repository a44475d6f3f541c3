package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
	"go.uber.org/zap"
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 5
	lockBackoff  = 50 * time.Millisecond
)

type cartUseCase struct {
	repo     cart.Repository
	locker   cart.Locker
	products cart.ProductFinder
	pricing  cart.PricingProvider
	ttl      time.Duration
	newID    func() string
	logger   logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, locker cart.Locker, products cart.ProductFinder, prices cart.PricingProvider, ttl time.Duration, log logger.ZapLogger) (cart.UseCase, error) {
	gen, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}
	return &cartUseCase{
		repo:     repo,
		locker:   locker,
		products: products,
		pricing:  prices,
		ttl:      ttl,
		newID:    gen,
		logger:   log,
	}, nil
}

func (uc *cartUseCase) CreateCart(ctx context.Context, storeID string, catalog model.CatalogType) (*dto.CartView, error) {
	// Fails early when the store does not publish this catalog.
	if _, err := uc.pricing.Resolver(ctx, storeID, catalog); err != nil {
		return nil, err
	}

	c := &model.Cart{
		SessionID:   uc.newID(),
		StoreID:     storeID,
		CatalogType: catalog,
		Items:       []model.CartLineItem{},
		UpdatedAt:   time.Now(),
	}
	if err := uc.repo.Save(ctx, c, uc.ttl); err != nil {
		return nil, err
	}
	return view(c), nil
}

func (uc *cartUseCase) GetCart(ctx context.Context, storeID, sessionID string) (*dto.CartView, error) {
	c, err := uc.load(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}
	return view(c), nil
}

func (uc *cartUseCase) AddItem(ctx context.Context, input *dto.AddItemInput) (*dto.CartView, error) {
	if input.Quantity < 1 {
		return nil, pricing.ErrInvalidQuantity
	}

	unlock, err := uc.lock(ctx, input.StoreID, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := uc.load(ctx, input.StoreID, input.SessionID)
	if err != nil {
		return nil, err
	}

	p, variation, err := uc.findProduct(ctx, input.StoreID, input.ProductID, input.VariationID)
	if err != nil {
		return nil, err
	}

	// Merging sums quantities; the merged line is re-priced and re-checked
	// against stock at the new total.
	existing := cart.QuantityOf(c, cart.LineID(p.ID, variation))
	line, err := uc.build(ctx, c, p, variation, existing+input.Quantity)
	if err != nil {
		return nil, err
	}

	cart.Upsert(c, *line)
	if err := uc.save(ctx, c); err != nil {
		return nil, err
	}

	uc.logger.Debug("cart line added",
		zap.String("session_id", c.SessionID),
		zap.String("line_id", line.ID),
		zap.Int("quantity", line.Quantity),
		zap.String("unit_price", line.UnitPrice.String()),
	)
	return view(c), nil
}

func (uc *cartUseCase) UpdateQuantity(ctx context.Context, input *dto.UpdateQuantityInput) (*dto.CartView, error) {
	unlock, err := uc.lock(ctx, input.StoreID, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := uc.load(ctx, input.StoreID, input.SessionID)
	if err != nil {
		return nil, err
	}

	i := cart.FindLine(c, input.LineID)
	if i < 0 {
		return nil, cart.ErrLineNotFound
	}

	if input.Quantity <= 0 {
		if err := cart.Remove(c, input.LineID); err != nil {
			return nil, err
		}
		return uc.saveView(ctx, c)
	}

	current := c.Items[i]
	variationID := ""
	if current.Variation != nil {
		variationID = current.Variation.ID
	}
	p, variation, err := uc.findProduct(ctx, input.StoreID, current.Product.ID, variationID)
	if err != nil {
		return nil, err
	}

	line, err := uc.build(ctx, c, p, variation, input.Quantity)
	if err != nil {
		return nil, err
	}
	cart.Upsert(c, *line)
	return uc.saveView(ctx, c)
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, storeID, sessionID, lineID string) (*dto.CartView, error) {
	unlock, err := uc.lock(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := uc.load(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := cart.Remove(c, lineID); err != nil {
		return nil, err
	}
	return uc.saveView(ctx, c)
}

func (uc *cartUseCase) ClearCart(ctx context.Context, storeID, sessionID string) error {
	return uc.repo.Delete(ctx, storeID, sessionID)
}

// lock holds the session lock for a read-modify-write of one cart.
func (uc *cartUseCase) lock(ctx context.Context, storeID, sessionID string) (func(), error) {
	key := fmt.Sprintf("lock:cart:%s:%s", storeID, sessionID)
	value := uuid.New().String()

	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, key, value, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire cart lock", zap.String("key", key), zap.Error(err))
		}
		if ok {
			return func() {
				if err := uc.locker.ReleaseLock(context.WithoutCancel(ctx), key, value); err != nil {
					uc.logger.Warn("failed to release cart lock", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockBackoff):
		}
	}
	return nil, cart.ErrCartBusy
}

func (uc *cartUseCase) load(ctx context.Context, storeID, sessionID string) (*model.Cart, error) {
	c, err := uc.repo.Get(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, cart.ErrCartNotFound
	}
	return c, nil
}

func (uc *cartUseCase) findProduct(ctx context.Context, storeID, productID, variationID string) (*model.Product, *model.ProductVariation, error) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil || !p.IsActive || p.StoreID != storeID {
		return nil, nil, cart.ErrProductUnavailable
	}

	if variationID == "" {
		return p, nil, nil
	}
	v := p.FindVariation(variationID)
	if v == nil || !v.IsActive {
		return nil, nil, cart.ErrVariationNotFound
	}
	return p, v, nil
}

func (uc *cartUseCase) build(ctx context.Context, c *model.Cart, p *model.Product, v *model.ProductVariation, quantity int) (*model.CartLineItem, error) {
	resolver, err := uc.pricing.Resolver(ctx, c.StoreID, c.CatalogType)
	if err != nil {
		return nil, err
	}
	return cart.NewBuilder(resolver).BuildCartItem(p, c.CatalogType, quantity, v)
}

func (uc *cartUseCase) save(ctx context.Context, c *model.Cart) error {
	c.UpdatedAt = time.Now()
	return uc.repo.Save(ctx, c, uc.ttl)
}

func (uc *cartUseCase) saveView(ctx context.Context, c *model.Cart) (*dto.CartView, error) {
	if err := uc.save(ctx, c); err != nil {
		return nil, err
	}
	return view(c), nil
}

func view(c *model.Cart) *dto.CartView {
	return &dto.CartView{Cart: c, Totals: cart.Totals(c)}
}

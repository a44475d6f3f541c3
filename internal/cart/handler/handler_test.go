package handler

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart/dto"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart/usecase"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/i18n"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/middleware"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/rpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type memoryRepo struct {
	mu    sync.Mutex
	carts map[string]model.Cart
}

func (r *memoryRepo) Get(_ context.Context, storeID, sessionID string) (*model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[storeID+"/"+sessionID]
	if !ok {
		return nil, nil
	}
	c.Items = append([]model.CartLineItem(nil), c.Items...)
	return &c, nil
}

func (r *memoryRepo) Save(_ context.Context, c *model.Cart, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[c.StoreID+"/"+c.SessionID] = *c
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, storeID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, storeID+"/"+sessionID)
	return nil
}

type productMap map[string]*model.Product

func (m productMap) FindByID(_ context.Context, id string) (*model.Product, error) {
	return m[id], nil
}

type noopLocker struct{}

func (noopLocker) AcquireLock(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

func (noopLocker) ReleaseLock(context.Context, string, string) error { return nil }

type retailPricing struct{}

func (retailPricing) Resolver(context.Context, string, model.CatalogType) (*pricing.Resolver, error) {
	return pricing.NewResolver(pricing.Settings{}), nil
}

func dial(t *testing.T) *grpc.ClientConn {
	t.Helper()

	products := productMap{
		"tee": {
			BaseModel:   model.BaseModel{ID: "tee"},
			StoreID:     "store-1",
			Name:        "Camiseta",
			RetailPrice: decimal.RequireFromString("49.90"),
			Stock:       3,
			IsActive:    true,
			PriceModel:  model.PriceModelRetailOnly,
			Variations: []model.ProductVariation{
				{BaseModel: model.BaseModel{ID: "m"}, ProductID: "tee", Stock: 3, PriceAdjustment: decimal.RequireFromString("5"), IsActive: true},
			},
		},
	}
	log := logger.NewNop()
	uc, err := usecase.NewCartUseCase(&memoryRepo{carts: map[string]model.Cart{}}, noopLocker{}, products, retailPricing{}, time.Hour, log)
	require.NoError(t, err)
	tr, err := i18n.New("pt-BR")
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(middleware.Chain(log, rpc.NewErrorMapper(tr, log)))
	Register(srv, NewCartHandler(uc, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func storeCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return metadata.AppendToOutgoingContext(ctx, "x-store-id", "store-1", "accept-language", "en")
}

func TestCartServiceFlow(t *testing.T) {
	conn := dial(t)
	ctx := storeCtx(t)

	var created dto.CartView
	require.NoError(t, rpc.Invoke(ctx, conn, rpc.Method(ServiceName, "CreateCart"), map[string]any{"catalog": "retail"}, &created))
	sid := created.Cart.SessionID
	require.NotEmpty(t, sid)

	var view dto.CartView
	err := rpc.Invoke(ctx, conn, rpc.Method(ServiceName, "AddItem"),
		dto.AddItemInput{SessionID: sid, ProductID: "tee", VariationID: "m", Quantity: 2}, &view)
	require.NoError(t, err)
	require.Len(t, view.Cart.Items, 1)
	assert.Equal(t, "tee-m", view.Cart.Items[0].ID)
	assert.True(t, view.Cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("54.90")))
	assert.True(t, view.Totals.Subtotal.Equal(decimal.RequireFromString("109.80")))
	assert.Equal(t, "store-1", view.Cart.StoreID)

	err = rpc.Invoke(ctx, conn, rpc.Method(ServiceName, "AddItem"),
		dto.AddItemInput{SessionID: sid, ProductID: "tee", VariationID: "m", Quantity: 2}, &view)
	st := status.Convert(err)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
	assert.Equal(t, "Only 3 units available.", st.Message())
	assert.Equal(t, "3", rpc.ErrorInfo(err).Metadata["available"])

	err = rpc.Invoke(ctx, conn, rpc.Method(ServiceName, "AddItem"),
		dto.AddItemInput{SessionID: sid, ProductID: "tee", Quantity: 1}, &view)
	assert.Equal(t, "VARIATION_REQUIRED", rpc.ErrorInfo(err).Reason)

	require.NoError(t, rpc.Invoke(ctx, conn, rpc.Method(ServiceName, "ClearCart"), map[string]any{"session_id": sid}, &struct{}{}))
	err = rpc.Invoke(ctx, conn, rpc.Method(ServiceName, "GetCart"), map[string]any{"session_id": sid}, &view)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCartServiceRequiresStore(t *testing.T) {
	conn := dial(t)

	var created dto.CartView
	err := rpc.Invoke(context.Background(), conn, rpc.Method(ServiceName, "CreateCart"), map[string]any{}, &created)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "MISSING_STORE", rpc.ErrorInfo(err).Reason)
}

package rpc

import (
	"context"
	"testing"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/i18n"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/storefront"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type payload struct {
	Name     string              `json:"name"`
	Quantity int                 `json:"quantity"`
	Price    decimal.Decimal     `json:"price"`
	Discount decimal.NullDecimal `json:"discount"`
	Tags     []string            `json:"tags"`
}

func TestEncodeDecode(t *testing.T) {
	in := payload{
		Name:     "Camiseta",
		Quantity: 3,
		Price:    decimal.RequireFromString("59.90"),
		Tags:     []string{"a", "b"},
	}

	s, err := Encode(in)
	require.NoError(t, err)
	assert.Equal(t, "59.9", s.Fields["price"].GetStringValue())
	assert.Equal(t, float64(3), s.Fields["quantity"].GetNumberValue())

	var out payload
	require.NoError(t, Decode(s, &out))
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Quantity, out.Quantity)
	assert.True(t, in.Price.Equal(out.Price))
	assert.False(t, out.Discount.Valid)
	assert.Equal(t, in.Tags, out.Tags)
}

func TestDecodeNumericDecimal(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{"price": 12.5, "discount": "1.25"})
	require.NoError(t, err)

	var out payload
	require.NoError(t, Decode(s, &out))
	assert.True(t, out.Price.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, out.Discount.Valid)
}

func TestDecodeRejectsWrongShape(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{"quantity": "many"})
	require.NoError(t, err)

	var out payload
	assert.ErrorIs(t, Decode(s, &out), ErrBadRequest)
	assert.NoError(t, Decode(nil, &out))
}

func newMapper(t *testing.T) *ErrorMapper {
	t.Helper()
	tr, err := i18n.New("pt-BR")
	require.NoError(t, err)
	return NewErrorMapper(tr, logger.NewNop())
}

func english() context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("accept-language", "en"))
}

func TestStatusTypedErrors(t *testing.T) {
	m := newMapper(t)

	err := m.Status(english(), errors.Wrap(&cart.InsufficientStockError{Available: 2, Requested: 5}, "add item"))
	st := status.Convert(err)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
	assert.Equal(t, "Only 2 units available.", st.Message())
	info := ErrorInfo(err)
	require.NotNil(t, info)
	assert.Equal(t, "INSUFFICIENT_STOCK", info.Reason)
	assert.Equal(t, "2", info.Metadata["available"])

	err = m.Status(context.Background(), &pricing.BelowMinimumQuantityError{Required: 6, Requested: 2})
	st = status.Convert(err)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
	assert.Equal(t, "O pedido mínimo para este produto é de 6 unidades.", st.Message())
	assert.Equal(t, "6", ErrorInfo(err).Metadata["required"])
}

func TestStatusSentinels(t *testing.T) {
	m := newMapper(t)

	tests := []struct {
		err    error
		code   codes.Code
		reason string
	}{
		{cart.ErrVariationRequired, codes.InvalidArgument, "VARIATION_REQUIRED"},
		{pricing.ErrInvalidProductPrice, codes.FailedPrecondition, "INVALID_PRODUCT_PRICE"},
		{storefront.ErrCatalogDisabled, codes.FailedPrecondition, "CATALOG_DISABLED"},
		{cart.ErrCartNotFound, codes.NotFound, "CART_NOT_FOUND"},
		{errors.Wrap(ErrBadRequest, "json: bad"), codes.InvalidArgument, "BAD_REQUEST"},
		{errors.New("db exploded"), codes.Internal, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			err := m.Status(english(), tt.err)
			assert.Equal(t, tt.code, status.Code(err))
			assert.Equal(t, tt.reason, ErrorInfo(err).Reason)
		})
	}

	assert.Equal(t, "Please choose a variation before adding this product.",
		status.Convert(m.Status(english(), cart.ErrVariationRequired)).Message())
	assert.NotContains(t, status.Convert(m.Status(english(), errors.New("db exploded"))).Message(), "db")
}

func TestStatusPassesThrough(t *testing.T) {
	m := newMapper(t)
	assert.NoError(t, m.Status(context.Background(), nil))

	orig := status.Error(codes.Unauthenticated, "nope")
	assert.Equal(t, orig, m.Status(context.Background(), orig))
}

package rpc

import (
	"context"
	"strconv"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/auth"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/catalog"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/i18n"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/storefront"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "shopflow.catalog"

// ErrMissingStore is returned when a call carries no store id.
var ErrMissingStore = errors.New("missing " + auth.StoreIDHeader + " metadata")

type rule struct {
	target  error
	code    codes.Code
	reason  string
	message string // i18n message ID; empty uses the error text
}

var rules = []rule{
	{ErrBadRequest, codes.InvalidArgument, "BAD_REQUEST", ""},
	{ErrMissingStore, codes.InvalidArgument, "MISSING_STORE", ""},

	{pricing.ErrInvalidQuantity, codes.InvalidArgument, "INVALID_QUANTITY", i18n.MsgInvalidQuantity},
	{pricing.ErrInvalidProductPrice, codes.FailedPrecondition, "INVALID_PRODUCT_PRICE", i18n.MsgInvalidProductPrice},

	{cart.ErrVariationRequired, codes.InvalidArgument, "VARIATION_REQUIRED", i18n.MsgVariationRequired},
	{cart.ErrVariationNotFound, codes.NotFound, "VARIATION_NOT_FOUND", i18n.MsgVariationNotFound},
	{cart.ErrProductUnavailable, codes.FailedPrecondition, "PRODUCT_UNAVAILABLE", i18n.MsgProductUnavailable},
	{cart.ErrLineNotFound, codes.NotFound, "LINE_NOT_FOUND", i18n.MsgNotFound},
	{cart.ErrCartNotFound, codes.NotFound, "CART_NOT_FOUND", i18n.MsgCartNotFound},
	{cart.ErrCartBusy, codes.Aborted, "BUSY", i18n.MsgBusy},

	{catalog.ErrProductNotFound, codes.NotFound, "PRODUCT_NOT_FOUND", i18n.MsgNotFound},
	{catalog.ErrVariationNotFound, codes.NotFound, "VARIATION_NOT_FOUND", i18n.MsgVariationNotFound},

	{storefront.ErrCatalogDisabled, codes.FailedPrecondition, "CATALOG_DISABLED", i18n.MsgCatalogDisabled},
	{storefront.ErrInvalidCatalog, codes.InvalidArgument, "INVALID_CATALOG", ""},
	{storefront.ErrInvalidTemplate, codes.InvalidArgument, "INVALID_TEMPLATE", ""},
	{storefront.ErrNoCatalogEnabled, codes.InvalidArgument, "NO_CATALOG_ENABLED", ""},

	{product.ErrNotFound, codes.NotFound, "PRODUCT_NOT_FOUND", i18n.MsgNotFound},
	{product.ErrVariationNotFound, codes.NotFound, "VARIATION_NOT_FOUND", i18n.MsgVariationNotFound},
	{product.ErrSKUExists, codes.AlreadyExists, "SKU_EXISTS", ""},
	{product.ErrNameRequired, codes.InvalidArgument, "NAME_REQUIRED", ""},
	{product.ErrInvalidRetailPrice, codes.InvalidArgument, "INVALID_RETAIL_PRICE", ""},
	{product.ErrInvalidPriceModel, codes.InvalidArgument, "INVALID_PRICE_MODEL", ""},
	{product.ErrWholesaleIncomplete, codes.InvalidArgument, "WHOLESALE_INCOMPLETE", ""},
	{product.ErrInvalidWholesale, codes.InvalidArgument, "INVALID_WHOLESALE", ""},
	{product.ErrNegativeStock, codes.InvalidArgument, "NEGATIVE_STOCK", ""},
	{product.ErrInvalidTiers, codes.InvalidArgument, "INVALID_TIERS", ""},

	{inventory.ErrNotFound, codes.NotFound, "STOCK_NOT_FOUND", i18n.MsgNotFound},
	{inventory.ErrInsufficientStock, codes.FailedPrecondition, "INSUFFICIENT_STOCK", ""},
	{inventory.ErrZeroChange, codes.InvalidArgument, "ZERO_CHANGE", ""},
	{inventory.ErrBusy, codes.Aborted, "BUSY", i18n.MsgBusy},

	{context.Canceled, codes.Canceled, "CANCELED", ""},
	{context.DeadlineExceeded, codes.DeadlineExceeded, "DEADLINE_EXCEEDED", ""},
}

// ErrorMapper turns domain errors into gRPC status errors with an ErrorInfo
// detail and a message in the caller's language.
type ErrorMapper struct {
	translator *i18n.Translator
	logger     logger.ZapLogger
}

func NewErrorMapper(translator *i18n.Translator, log logger.ZapLogger) *ErrorMapper {
	return &ErrorMapper{translator: translator, logger: log}
}

func (m *ErrorMapper) Status(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	lang := auth.GetLanguage(ctx)

	var below *pricing.BelowMinimumQuantityError
	if errors.As(err, &below) {
		return m.build(codes.FailedPrecondition, "BELOW_MINIMUM_QUANTITY",
			m.translator.Localize(lang, i18n.MsgBelowMinimumQuantity, map[string]any{"Required": below.Required}),
			map[string]string{
				"required":  strconv.Itoa(below.Required),
				"requested": strconv.Itoa(below.Requested),
			})
	}

	var stock *cart.InsufficientStockError
	if errors.As(err, &stock) {
		return m.build(codes.FailedPrecondition, "INSUFFICIENT_STOCK",
			m.translator.Localize(lang, i18n.MsgInsufficientStock, map[string]any{"Available": stock.Available}),
			map[string]string{
				"available": strconv.Itoa(stock.Available),
				"requested": strconv.Itoa(stock.Requested),
			})
	}

	for _, r := range rules {
		if !errors.Is(err, r.target) {
			continue
		}
		msg := err.Error()
		if r.message != "" {
			msg = m.translator.Localize(lang, r.message, nil)
		}
		return m.build(r.code, r.reason, msg, nil)
	}

	m.logger.Error("unhandled error", zap.Error(err))
	return m.build(codes.Internal, "INTERNAL", m.translator.Localize(lang, i18n.MsgInternal, nil), nil)
}

func (m *ErrorMapper) build(code codes.Code, reason, msg string, metadata map[string]string) error {
	st := status.New(code, msg)
	withInfo, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   errorDomain,
		Metadata: metadata,
	})
	if err != nil {
		return st.Err()
	}
	return withInfo.Err()
}

// ErrorInfo extracts the ErrorInfo detail of a status error, if present.
func ErrorInfo(err error) *errdetails.ErrorInfo {
	st, ok := status.FromError(err)
	if !ok {
		return nil
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info
		}
	}
	return nil
}

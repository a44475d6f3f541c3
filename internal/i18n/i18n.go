// Package i18n renders user-facing messages in the shopper's language.
package i18n

import (
	"embed"
	"encoding/json"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

// Message IDs.
const (
	MsgInvalidProductPrice  = "InvalidProductPrice"
	MsgInvalidQuantity      = "InvalidQuantity"
	MsgVariationRequired    = "VariationRequired"
	MsgVariationNotFound    = "VariationNotFound"
	MsgProductUnavailable   = "ProductUnavailable"
	MsgInsufficientStock    = "InsufficientStock"
	MsgBelowMinimumQuantity = "BelowMinimumQuantity"
	MsgCatalogDisabled      = "CatalogDisabled"
	MsgInvalidArgument      = "InvalidArgument"
	MsgNotFound             = "NotFound"
	MsgCartNotFound         = "CartNotFound"
	MsgBusy                 = "Busy"
	MsgInternal             = "Internal"
)

type Translator struct {
	bundle   *goi18n.Bundle
	fallback string
}

// New loads the embedded catalogs. defaultLang is used when the caller's
// preferences match nothing.
func New(defaultLang string) (*Translator, error) {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, errors.Wrapf(err, "i18n: default language %q", defaultLang)
	}

	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, file := range []string{"locales/active.en.json", "locales/active.pt-BR.json"} {
		if _, err := bundle.LoadMessageFileFS(locales, file); err != nil {
			return nil, errors.Wrapf(err, "i18n: load %s", file)
		}
	}
	return &Translator{bundle: bundle, fallback: tag.String()}, nil
}

// Localize renders id for the given Accept-Language style preferences.
// Unknown IDs come back unchanged.
func (t *Translator) Localize(acceptLanguage, id string, data map[string]any) string {
	localizer := goi18n.NewLocalizer(t.bundle, acceptLanguage, t.fallback)

	cfg := &goi18n.LocalizeConfig{MessageID: id, TemplateData: data}
	if count, ok := data["Available"]; ok {
		cfg.PluralCount = count
	}
	msg, err := localizer.Localize(cfg)
	if err != nil {
		return id
	}
	return msg
}

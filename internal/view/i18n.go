package view

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-daterange/internal/config"
	"github.com/tartampluch/go-daterange/internal/engine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.json
var localeFS embed.FS

var labelKeys = map[engine.Granularity]string{
	engine.Year:   config.TKeyFreqYear,
	engine.Month:  config.TKeyFreqMonth,
	engine.Date:   config.TKeyFreqDate,
	engine.Hour:   config.TKeyFreqHour,
	engine.Minute: config.TKeyFreqMinute,
}

// Layout fallbacks used when a locale lacks the key.
var defaultLayouts = map[string]string{
	config.TKeyLayoutDate:   config.DateFormatInput,
	config.TKeyLayoutHour:   "2006-01-02 15h",
	config.TKeyLayoutMinute: "2006-01-02 15:04",
}

// loadBundle parses the embedded locales once per process.
var loadBundle = sync.OnceValues(setupBundle)

// setupBundle initializes the translation bundle and detects available languages.
func setupBundle() (*i18n.Bundle, []string) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return bundle, nil
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		trimmed := strings.TrimPrefix(name, "active.")
		langCode := strings.TrimSuffix(trimmed, ".json")

		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		path := "locales/" + name
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	return bundle, detectedLangs
}

// Languages returns the language codes found in the embedded locales.
func Languages() []string {
	_, langs := loadBundle()
	return langs
}

// Translator renders labels, layouts and totals in one language.
// It is safe for concurrent use.
type Translator struct {
	tag       language.Tag
	localizer *i18n.Localizer
	printer   *message.Printer
}

// NewTranslator returns a Translator for the first of langs the bundle
// supports. Each entry may be a plain code ("ko") or an Accept-Language
// header value. Unknown languages fall back to English.
func NewTranslator(langs ...string) *Translator {
	bundle, _ := loadBundle()
	localizer := i18n.NewLocalizer(bundle, langs...)

	_, tag, err := localizer.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: config.TKeyFreqDate})
	if err != nil || tag == language.Und {
		tag = language.English
	}

	return &Translator{
		tag:       tag,
		localizer: localizer,
		printer:   message.NewPrinter(tag),
	}
}

// Lang is the base language code the Translator resolved to.
func (tr *Translator) Lang() string {
	base, _ := tr.tag.Base()
	return base.String()
}

// Msg translates a key, returning the key itself when it is missing.
func (tr *Translator) Msg(key string) string {
	msg, ok := tr.localize(&i18n.LocalizeConfig{MessageID: key})
	if !ok {
		return key
	}
	return msg
}

// Label is the selector label of g ("Daily", "일간").
func (tr *Translator) Label(g engine.Granularity) string {
	key, ok := labelKeys[g]
	if !ok {
		return g.String()
	}
	return tr.Msg(key)
}

// Layout returns the Go time layout used to list instants of g. Year, month
// and date share the date layout.
func (tr *Translator) Layout(g engine.Granularity) string {
	key := config.TKeyLayoutDate
	switch g {
	case engine.Hour:
		key = config.TKeyLayoutHour
	case engine.Minute:
		key = config.TKeyLayoutMinute
	}

	if layout, ok := tr.localize(&i18n.LocalizeConfig{MessageID: key}); ok {
		return layout
	}
	return defaultLayouts[key]
}

// Format renders t with the layout of g.
func (tr *Translator) Format(t time.Time, g engine.Granularity) string {
	return t.Format(tr.Layout(g))
}

// Total is the localised count line ("Total = 10 dates", "총 갯수 = 10개").
func (tr *Translator) Total(count int) string {
	msg, ok := tr.localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyTotal,
		TemplateData: map[string]string{"Count": tr.printer.Sprintf("%d", count)},
		PluralCount:  count,
	})
	if !ok {
		return fmt.Sprintf(config.FallbackTotal, count)
	}
	return msg
}

// EmptyRange is the placeholder listed when a range has no instants.
func (tr *Translator) EmptyRange() string {
	if msg, ok := tr.localize(&i18n.LocalizeConfig{MessageID: config.TKeyEmptyRange}); ok {
		return msg
	}
	return config.FallbackEmptyRange
}

// Summary labels a calendar event for the instant t.
func (tr *Translator) Summary(t time.Time, g engine.Granularity) string {
	msg, ok := tr.localize(&i18n.LocalizeConfig{
		MessageID: config.TKeyEvtSummary,
		TemplateData: map[string]string{
			"Frequency": tr.Label(g),
			"Date":      tr.Format(t, g),
		},
	})
	if !ok {
		return fmt.Sprintf(config.FallbackSummary, tr.Format(t, g))
	}
	return msg
}

func (tr *Translator) localize(lc *i18n.LocalizeConfig) (string, bool) {
	msg, err := tr.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return "", false
	}
	return msg, true
}

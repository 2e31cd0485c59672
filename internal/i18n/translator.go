// Package i18n looks up user-facing strings for the active locale.
package i18n

import (
	"embed"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Direction is the text direction of a locale.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// Supported lists the locales with a catalog, default first.
var Supported = []language.Tag{language.English, language.Arabic}

var matcher = language.NewMatcher(Supported)

var placeholderRE = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Catalog is a flat key -> text table.
type Catalog map[string]string

// Translator resolves keys against the active locale, falling back to
// English and finally to the key itself. Each missing key is logged once.
type Translator struct {
	mu       sync.RWMutex
	tag      language.Tag
	catalogs map[language.Tag]Catalog
	printer  *message.Printer
	missing  map[string]bool
	logger   *slog.Logger
}

// New loads the embedded catalogs and selects locale. An unknown locale
// selects English.
func New(locale string, logger *slog.Logger) (*Translator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	catalogs := make(map[language.Tag]Catalog, len(Supported))
	for _, tag := range Supported {
		data, err := localeFS.ReadFile("locales/" + tag.String() + ".toml")
		if err != nil {
			return nil, fmt.Errorf("read %s catalog: %w", tag, err)
		}
		cat, err := ParseCatalog(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s catalog: %w", tag, err)
		}
		catalogs[tag] = cat
	}

	t := &Translator{
		catalogs: catalogs,
		missing:  make(map[string]bool),
		logger:   logger.With(slog.String("component", "i18n")),
	}
	t.SetLocale(locale)
	return t, nil
}

// NewWithCatalogs builds a Translator from in-memory catalogs.
func NewWithCatalogs(locale string, catalogs map[language.Tag]Catalog, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Translator{
		catalogs: catalogs,
		missing:  make(map[string]bool),
		logger:   logger.With(slog.String("component", "i18n")),
	}
	t.SetLocale(locale)
	return t
}

// ParseCatalog flattens nested TOML tables into dotted keys.
func ParseCatalog(data []byte) (Catalog, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	cat := Catalog{}
	flatten("", raw, cat)
	return cat, nil
}

func flatten(prefix string, node map[string]any, out Catalog) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Match returns the supported tag closest to locale.
func Match(locale string) language.Tag {
	tag, _, _ := matcher.Match(language.Make(strings.TrimSpace(locale)))
	base, _ := tag.Base()
	for _, s := range Supported {
		if sb, _ := s.Base(); sb == base {
			return s
		}
	}
	return Supported[0]
}

// SetLocale switches the active locale and returns the selected code.
func (t *Translator) SetLocale(locale string) string {
	tag := Match(locale)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tag = tag
	t.printer = message.NewPrinter(tag)
	return tag.String()
}

// Locale returns the active locale code.
func (t *Translator) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tag.String()
}

// Next returns the supported locale after the active one, wrapping around.
func (t *Translator) Next() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i := slices.Index(Supported, t.tag)
	return Supported[(i+1)%len(Supported)].String()
}

// Direction returns RTL for Arabic and LTR otherwise.
func (t *Translator) Direction() Direction {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return DirectionOf(t.tag)
}

// DirectionOf returns the text direction of tag.
func DirectionOf(tag language.Tag) Direction {
	base, _ := tag.Base()
	switch base.String() {
	case "ar", "he", "fa", "ur":
		return RTL
	}
	return LTR
}

// Get returns the text for key with {{name}} placeholders replaced from
// vars. Integers are formatted for the active locale.
func (t *Translator) Get(key string, vars map[string]any) string {
	t.mu.RLock()
	tag := t.tag
	printer := t.printer
	text, ok := t.catalogs[tag][key]
	if !ok && tag != Supported[0] {
		text, ok = t.catalogs[Supported[0]][key]
	}
	t.mu.RUnlock()

	if !ok {
		t.reportMissing(tag, key)
		return key
	}
	if len(vars) == 0 {
		return text
	}
	return placeholderRE.ReplaceAllStringFunc(text, func(m string) string {
		name := placeholderRE.FindStringSubmatch(m)[1]
		v, ok := vars[name]
		if !ok {
			return m
		}
		if n, isInt := v.(int); isInt {
			return printer.Sprintf("%d", n)
		}
		return fmt.Sprint(v)
	})
}

// T is Get without variables.
func (t *Translator) T(key string) string {
	return t.Get(key, nil)
}

// Number formats n with the active locale's grouping.
func (t *Translator) Number(n int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.printer.Sprintf("%d", n)
}

// Keys returns every key in the catalog for locale, sorted.
func (t *Translator) Keys(locale string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.catalogs[Match(locale)]))
}

func (t *Translator) reportMissing(tag language.Tag, key string) {
	t.mu.Lock()
	seen := t.missing[key]
	t.missing[key] = true
	t.mu.Unlock()
	if !seen {
		t.logger.Warn("missing translation", slog.String("key", key), slog.String("locale", tag.String()))
	}
}

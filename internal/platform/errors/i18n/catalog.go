// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type localeFile struct {
	Locale    string            `yaml:"locale"`
	Errors    map[string]string `yaml:"errors"`
	Overclock map[int]string    `yaml:"overclock"`
}

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale    string
	messages  map[Code]string
	overclock map[int]string
}

var (
	catalogsMu sync.RWMutex
	// catalogs holds embedded, override, and runtime-built catalogs by locale.
	catalogs = map[string]*Catalog{}
	matcher  language.Matcher
	tags     []string
)

func init() {
	loaded, err := LoadFromFS(embeddedLocales)
	if err != nil {
		panic(fmt.Sprintf("load embedded locales: %v", err))
	}
	for _, cat := range loaded {
		catalogs[cat.locale] = cat
	}
	rebuildMatcherLocked()
}

// LoadFromFS parses every locales/*.yaml file in catalogFS.
func LoadFromFS(catalogFS fs.FS) ([]*Catalog, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	out := make([]*Catalog, 0, len(paths))
	seenBase := false
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if locale == "" {
			return nil, fmt.Errorf("catalog %s: locale is required", path)
		}
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("catalog %s: parse locale tag %q: %w", path, locale, err)
		}
		if locale == BaseLocale {
			seenBase = true
		}
		cat := NewCatalog(locale, file.Errors)
		cat.overclock = make(map[int]string, len(file.Overclock))
		for level, text := range file.Overclock {
			cat.overclock[level] = text
		}
		out = append(out, cat)
	}
	if !seenBase {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return out, nil
}

// GetCatalog returns the catalog best matching the given locale.
// Falls back to en-US if nothing matches.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}

	if c, ok := lookupCatalog(requested); ok {
		return c
	}

	catalogsMu.RLock()
	m, known := matcher, tags
	catalogsMu.RUnlock()
	if m != nil {
		_, index, confidence := m.Match(language.Make(requested))
		if confidence != language.No && index < len(known) {
			if c, ok := lookupCatalog(known[index]); ok {
				return c
			}
		}
	}

	base, _ := lookupCatalog(BaseLocale)
	return base
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
// Templates are always executed even with nil/empty metadata to ensure
// consistent output (template variables without metadata render as empty).
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// OverclockEffect returns the localized narrative text for an overclock level.
// Levels above the highest entry reuse the highest entry.
func (c *Catalog) OverclockEffect(level int) (string, bool) {
	if level <= 0 || len(c.overclock) == 0 {
		return "", false
	}
	highest := 0
	for l := range c.overclock {
		if l > highest {
			highest = l
		}
	}
	if level > highest {
		level = highest
	}
	text, ok := c.overclock[level]
	return text, ok
}

// RegisterCatalog registers a new catalog for the given locale.
// This is primarily for testing purposes.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
	rebuildMatcherLocked()
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}

// Locales returns the registered locale identifiers, base locale first.
func Locales() []string {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func lookupCatalog(locale string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[locale]
	return cat, ok
}

// rebuildMatcherLocked must be called with catalogsMu held for writing.
func rebuildMatcherLocked() {
	keys := make([]string, 0, len(catalogs))
	for locale := range catalogs {
		if locale == BaseLocale {
			continue
		}
		if _, err := language.Parse(locale); err != nil {
			continue
		}
		keys = append(keys, locale)
	}
	sort.Strings(keys)
	keys = append([]string{BaseLocale}, keys...)

	supported := make([]language.Tag, 0, len(keys))
	for _, key := range keys {
		supported = append(supported, language.Make(key))
	}
	tags = keys
	matcher = language.NewMatcher(supported)
}

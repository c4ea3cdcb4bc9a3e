// i18n/i18n.go
package i18n

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/language"
)

// Bundle holds translations for multiple locales.
type Bundle struct {
	mu             sync.RWMutex
	locales        map[string]map[string]string
	tags           []language.Tag
	names          []string
	matcher        language.Matcher
	defaultLocale  string
	missingKeyFunc MissingKeyFunc
}

// MissingKeyFunc is called when a translation key is not found.
type MissingKeyFunc func(locale, key string) string

// NewBundle creates a new translation bundle. The default locale is always
// the first candidate of the matcher, so unknown languages resolve to it.
func NewBundle(defaultLocale string) *Bundle {
	b := &Bundle{
		locales:        make(map[string]map[string]string),
		defaultLocale:  defaultLocale,
		missingKeyFunc: func(_, key string) string { return key },
	}
	b.register(defaultLocale)
	return b
}

// SetMissingKeyFunc sets the function called when a key is missing.
func (b *Bundle) SetMissingKeyFunc(fn MissingKeyFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.missingKeyFunc = fn
}

// AddLocale adds or updates a locale with the given messages.
func (b *Bundle) AddLocale(tag string, messages map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.register(tag)
	dst := b.locales[tag]
	for k, v := range messages {
		dst[k] = v
	}
}

// register must be called with b.mu held (or before b is shared).
func (b *Bundle) register(tag string) {
	if _, ok := b.locales[tag]; ok {
		return
	}
	b.locales[tag] = make(map[string]string)
	b.tags = append(b.tags, language.Make(tag))
	b.names = append(b.names, tag)
	b.matcher = language.NewMatcher(b.tags)
}

// DefaultLocale returns the bundle's default locale.
func (b *Bundle) DefaultLocale() string {
	return b.defaultLocale
}

// Locales returns the registered locale tags, sorted.
func (b *Bundle) Locales() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := append([]string(nil), b.names...)
	sort.Strings(out)
	return out
}

// HasLocale reports whether tag was registered verbatim.
func (b *Bundle) HasLocale(tag string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.locales[tag]
	return ok
}

// Match resolves one or more language preferences (Accept-Language header
// values or plain tags) to a registered locale. Returns the default locale
// when nothing matches.
func (b *Bundle) Match(prefs ...string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var wanted []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		wanted = append(wanted, tags...)
	}
	if len(wanted) == 0 {
		return b.defaultLocale
	}

	_, idx, conf := b.matcher.Match(wanted...)
	if conf == language.No {
		return b.defaultLocale
	}
	return b.names[idx]
}

// T translates key for locale, formatting args with fmt.Sprintf.
func (b *Bundle) T(locale, key string, args ...any) string {
	msg, ok := b.lookup(locale, key)
	if !ok {
		b.mu.RLock()
		fn := b.missingKeyFunc
		b.mu.RUnlock()
		return fn(locale, key)
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func (b *Bundle) lookup(locale, key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if msgs, ok := b.locales[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg, true
		}
	}
	if msg, ok := b.locales[b.defaultLocale][key]; ok {
		return msg, true
	}
	return "", false
}

// Localizer provides translations for a specific locale.
type Localizer struct {
	bundle *Bundle
	locale string
}

// Localizer returns a localizer bound to locale.
func (b *Bundle) Localizer(locale string) *Localizer {
	return &Localizer{bundle: b, locale: locale}
}

// Locale returns the localizer's locale.
func (l *Localizer) Locale() string {
	return l.locale
}

// T translates a key.
func (l *Localizer) T(key string, args ...any) string {
	return l.bundle.T(l.locale, key, args...)
}

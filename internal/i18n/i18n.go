// Package i18n keeps the persisted UI language and looks up translated
// strings by dot path, e.g. "settings.saveButton".
package i18n

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/iiroan/folio/internal/kv"
)

// KeyLanguage is the storage key of the language preference.
const KeyLanguage = "language"

// Language is a supported UI language.
type Language string

const (
	Vietnamese Language = "vi"
	English    Language = "en"
)

// DefaultLanguage is used when nothing valid was persisted.
const DefaultLanguage = Vietnamese

// Languages lists the supported languages.
func Languages() []Language {
	return []Language{Vietnamese, English}
}

// ParseLanguage accepts only the supported language codes.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case Vietnamese:
		return Vietnamese, true
	case English:
		return English, true
	}
	return "", false
}

//go:embed translations.yaml
var translationsYAML []byte

// Provider serves translations for the persisted language.
type Provider struct {
	store  kv.Store
	logger *log.Logger
	table  map[Language]map[string]any

	mu   sync.RWMutex
	lang Language
}

type Option func(*Provider)

func WithLogger(l *log.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// New loads the translation table and the persisted language.
func New(store kv.Store, opts ...Option) (*Provider, error) {
	p := &Provider{
		store:  store,
		logger: log.Default(),
		lang:   DefaultLanguage,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := yaml.Unmarshal(translationsYAML, &p.table); err != nil {
		return nil, fmt.Errorf("parsing translations: %w", err)
	}

	v, ok, err := store.Get(KeyLanguage)
	switch {
	case err != nil:
		p.logger.Warn("reading language failed, using default", "error", err)
	case ok:
		if lang, valid := ParseLanguage(v); valid {
			p.lang = lang
		}
	}
	return p, nil
}

// Language returns the active language.
func (p *Provider) Language() Language {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lang
}

// SetLanguage switches and persists the language.
func (p *Provider) SetLanguage(lang Language) error {
	parsed, ok := ParseLanguage(string(lang))
	if !ok {
		return fmt.Errorf("unsupported language %q (want vi or en)", lang)
	}
	p.mu.Lock()
	p.lang = parsed
	p.mu.Unlock()

	if err := p.store.Set(KeyLanguage, string(parsed)); err != nil {
		p.logger.Warn("persisting language failed", "error", err)
	}
	return nil
}

// Locale returns the speech locale of the active language.
func (p *Provider) Locale() string {
	if p.Language() == English {
		return "en-US"
	}
	return "vi-VN"
}

// LanguageName is the language's own name, e.g. "Tiếng Việt".
func (p *Provider) LanguageName() string {
	return p.T("languageName")
}

// T returns the string at path for the active language. Unknown paths
// come back unchanged so a missing string is visible but harmless.
func (p *Provider) T(path string) string {
	return p.lookup(p.Language(), path)
}

// TFor is T for an explicit language.
func (p *Provider) TFor(lang Language, path string) string {
	return p.lookup(lang, path)
}

func (p *Provider) lookup(lang Language, path string) string {
	var node any = p.table[lang]
	for _, part := range strings.Split(path, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return path
		}
		node, ok = m[part]
		if !ok {
			return path
		}
	}
	if s, ok := node.(string); ok {
		return s
	}
	return path
}

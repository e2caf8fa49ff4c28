// Package page defines the page descriptor exchanged between the build
// pipeline and page hooks.
package page

import "maps"

// ContextLanguageKey is the page context entry mirroring the localized language,
// kept for templates that read it directly from the context.
const ContextLanguageKey = "language"

// ContextI18nKey is the reserved page context entry holding the
// LocalizationContext. Its presence marks a page as processed.
const ContextI18nKey = "i18n"

// Page is one page as known to the build pipeline.
type Page struct {
	// Path is the public URL path of the page.
	Path string `json:"path" yaml:"path"`

	// MatchPath is the client-side route pattern. Empty means none.
	MatchPath string `json:"matchPath,omitempty" yaml:"matchPath,omitempty"`

	// Component identifies the template rendering the page. Passed through untouched.
	Component string `json:"component,omitempty" yaml:"component,omitempty"`

	// Context is the free-form data handed to the template.
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`

	// I18n is set once the page has been localized. It is encoded as
	// context.i18n; see MarshalJSON and MarshalYAML.
	I18n *LocalizationContext `json:"-" yaml:"-"`
}

// LocalizationContext is the routing metadata attached to localized pages.
type LocalizationContext struct {
	Language                    string   `json:"language" yaml:"language"`
	Languages                   []string `json:"languages" yaml:"languages"`
	DefaultLanguage             string   `json:"defaultLanguage" yaml:"defaultLanguage"`
	GenerateDefaultLanguagePage bool     `json:"generateDefaultLanguagePage" yaml:"generateDefaultLanguagePage"`
	Routed                      bool     `json:"routed" yaml:"routed"`
	OriginalPath                string   `json:"originalPath" yaml:"originalPath"`
	Path                        string   `json:"path" yaml:"path"`
}

// Processed reports whether the page already carries a localization context,
// either typed or as a raw context entry.
func (p Page) Processed() bool {
	if p.I18n != nil {
		return true
	}
	_, ok := p.Context[ContextI18nKey]
	return ok
}

// Clone returns a copy that shares no mutable state with p.
func (p Page) Clone() Page {
	out := p
	if p.Context != nil {
		out.Context = maps.Clone(p.Context)
	}
	if p.I18n != nil {
		i18n := *p.I18n
		i18n.Languages = append([]string(nil), p.I18n.Languages...)
		out.I18n = &i18n
	}
	return out
}

// Language returns the localized language, or "" for unprocessed pages.
func (p Page) Language() string {
	if p.I18n != nil {
		return p.I18n.Language
	}
	if raw, ok := p.Context[ContextI18nKey].(map[string]any); ok {
		lang, _ := raw["language"].(string)
		return lang
	}
	return ""
}

// Package i18n multiplies a page into a canonical page plus language-prefixed
// alternates and attaches the routing metadata client-side routers need to
// pick a locale.
package i18n

import (
	"git.home.luguber.info/inful/pagelocale/internal/config"
	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/pathpattern"
	"git.home.luguber.info/inful/pagelocale/internal/util/sets"
)

// Options is the resolved plugin configuration. It is immutable once built
// and shared by every Localize call.
type Options struct {
	DefaultLanguage             string
	GenerateDefaultLanguagePage bool
	Languages                   sets.Ordered[string]
	Pages                       []PageOptions
	DynamicPages                []string
}

// PageOptions overrides localization for pages matching MatchPath.
type PageOptions struct {
	MatchPath *pathpattern.Pattern

	// Languages replaces the alternate set when non-nil.
	Languages *sets.Ordered[string]

	// ExcludeLanguages filters the alternate set when non-nil.
	ExcludeLanguages *sets.Ordered[string]

	// GetLanguageFromPath derives the canonical language from the :lang
	// parameter of LanguagePath.
	GetLanguageFromPath bool

	// LanguagePath is the detection pattern; MatchPath when nil.
	LanguagePath *pathpattern.Pattern
}

// languagePattern returns the pattern the language is detected with.
func (o *PageOptions) languagePattern() *pathpattern.Pattern {
	if o.LanguagePath != nil {
		return o.LanguagePath
	}
	return o.MatchPath
}

// OptionsFromConfig compiles cfg. Patterns that fail to compile are reported
// here so that Localize never sees a malformed configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts := Options{
		DefaultLanguage:             cfg.DefaultLanguage,
		GenerateDefaultLanguagePage: cfg.GenerateDefaultLanguagePage,
		Languages:                   sets.NewOrdered(cfg.Languages...),
		DynamicPages:                append([]string(nil), cfg.DynamicPages...),
		Pages:                       make([]PageOptions, 0, len(cfg.Pages)),
	}
	for i, po := range cfg.Pages {
		compiled, err := compilePageOptions(po)
		if err != nil {
			return Options{}, foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "invalid page options").
				Fatal().
				WithContext("index", i).
				WithContext("match_path", po.MatchPath).
				Build()
		}
		opts.Pages = append(opts.Pages, compiled)
	}
	return opts, nil
}

func compilePageOptions(po config.PageOptions) (PageOptions, error) {
	match, err := pathpattern.Compile(po.MatchPath)
	if err != nil {
		return PageOptions{}, err
	}
	out := PageOptions{
		MatchPath:           match,
		GetLanguageFromPath: po.GetLanguageFromPath,
		Languages:           optionalSet(po.Languages),
		ExcludeLanguages:    optionalSet(po.ExcludeLanguages),
	}
	if po.LanguagePath != "" {
		if out.LanguagePath, err = pathpattern.Compile(po.LanguagePath); err != nil {
			return PageOptions{}, err
		}
	}
	return out, nil
}

// optionalSet keeps the nil/empty distinction of YAML lists.
func optionalSet(vals []string) *sets.Ordered[string] {
	if vals == nil {
		return nil
	}
	s := sets.NewOrdered(vals...)
	return &s
}

// MatchingRule returns the index of the first page options whose pattern
// matches path, in declaration order.
func (o Options) MatchingRule(path string) (int, bool) {
	for i := range o.Pages {
		if o.Pages[i].MatchPath.Matches(path) {
			return i, true
		}
	}
	return -1, false
}

func (o Options) resolveOptions(path string) *PageOptions {
	if i, ok := o.MatchingRule(path); ok {
		return &o.Pages[i]
	}
	return nil
}

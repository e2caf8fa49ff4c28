package i18n

import (
	"git.home.luguber.info/inful/pagelocale/internal/config"
	"git.home.luguber.info/inful/pagelocale/internal/page"
	"git.home.luguber.info/inful/pagelocale/internal/util/sets"
)

// Outcome classifies what Localize did with a page.
type Outcome string

const (
	// OutcomeLocalized means the page is replaced by Result.Create.
	OutcomeLocalized Outcome = "localized"

	// OutcomeAlreadyProcessed means the page carried a localization context.
	OutcomeAlreadyProcessed Outcome = "already_processed"

	// OutcomeSkipped means the page reads its language from the path but the
	// language pattern did not match. The page is left as is and unmarked,
	// so a later call with the same page skips it again.
	OutcomeSkipped Outcome = "skipped"
)

// Result holds the page directives for one page.
type Result struct {
	Outcome Outcome

	// Delete is the page to remove; nil unless Outcome is OutcomeLocalized.
	Delete *page.Page

	// Create lists the canonical page first, then alternates in language order.
	Create []page.Page
}

// Canonical returns the canonical page, if any.
func (r Result) Canonical() (page.Page, bool) {
	if len(r.Create) == 0 {
		return page.Page{}, false
	}
	return r.Create[0], true
}

// Alternates returns the language-prefixed pages.
func (r Result) Alternates() []page.Page {
	if len(r.Create) <= 1 {
		return nil
	}
	return r.Create[1:]
}

// Localizer computes page directives. It holds no mutable state and is safe
// for concurrent use.
type Localizer struct {
	opts Options
}

// New creates a Localizer for opts.
func New(opts Options) *Localizer {
	return &Localizer{opts: opts}
}

// NewFromConfig compiles cfg and creates a Localizer.
func NewFromConfig(cfg *config.Config) (*Localizer, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(opts), nil
}

// Options returns the options the localizer was built with.
func (l *Localizer) Options() Options { return l.opts }

// Localize computes the canonical and alternate pages for p. p is not modified.
func (l *Localizer) Localize(p page.Page) Result {
	if p.Processed() {
		return Result{Outcome: OutcomeAlreadyProcessed}
	}

	po := l.opts.resolveOptions(p.Path)
	alternates := l.opts.alternateLanguages(po)

	state := l.opts.defaultDetection(p.Path)
	if po != nil && po.GetLanguageFromPath {
		detected, ok := l.opts.detectLanguage(p.Path, po)
		if !ok {
			return Result{Outcome: OutcomeSkipped}
		}
		state = detected
		// Pages in this mode exist once per language already.
		if detected.routed || po.ExcludeLanguages == nil {
			alternates = sets.Ordered[string]{}
		}
	}

	languages := l.opts.Languages
	if po != nil && po.Languages != nil {
		languages = *po.Languages
	}

	original := p.Clone()
	create := make([]page.Page, 0, 1+alternates.Len())
	create = append(create, l.buildPage(p, pageParams{
		language:     state.language,
		languages:    languages,
		path:         p.Path,
		originalPath: state.originalPath,
		routed:       state.routed,
		matchPath:    l.opts.matchPathFor(p.Path, "", p.MatchPath),
	}))

	for _, lng := range alternates.Values() {
		path := lng + p.Path
		create = append(create, l.buildPage(p, pageParams{
			language:     lng,
			languages:    l.opts.Languages,
			path:         path,
			originalPath: state.originalPath,
			routed:       true,
			matchPath:    l.opts.matchPathFor(path, lng, p.MatchPath),
		}))
	}

	return Result{Outcome: OutcomeLocalized, Delete: &original, Create: create}
}

type pageParams struct {
	language     string
	languages    sets.Ordered[string]
	path         string
	originalPath string
	routed       bool
	matchPath    string
}

// buildPage derives a localized copy of src.
func (l *Localizer) buildPage(src page.Page, params pageParams) page.Page {
	out := src.Clone()
	out.Path = params.path
	out.MatchPath = params.matchPath
	if out.Context == nil {
		out.Context = make(map[string]any, 1)
	}
	out.Context[page.ContextLanguageKey] = params.language
	out.I18n = &page.LocalizationContext{
		Language:                    params.language,
		Languages:                   params.languages.Values(),
		DefaultLanguage:             l.opts.DefaultLanguage,
		GenerateDefaultLanguagePage: l.opts.GenerateDefaultLanguagePage,
		Routed:                      params.routed,
		OriginalPath:                params.originalPath,
		Path:                        params.path,
	}
	return out
}

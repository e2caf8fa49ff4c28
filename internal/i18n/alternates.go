package i18n

import "git.home.luguber.info/inful/pagelocale/internal/util/sets"

// alternateLanguages computes the languages that get a prefixed copy of the
// page. The default language is left out unless GenerateDefaultLanguagePage
// is set because the canonical page already serves it.
//
// A per-page Languages list replaces the result outright, discarding any
// ExcludeLanguages filtering applied before it.
func (o Options) alternateLanguages(po *PageOptions) sets.Ordered[string] {
	base := o.withoutDefault(o.Languages)

	if po == nil {
		return base
	}
	if po.ExcludeLanguages != nil {
		base = base.Without(po.ExcludeLanguages.Values()...)
	}
	if po.Languages != nil {
		base = o.withoutDefault(*po.Languages)
	}
	return base
}

func (o Options) withoutDefault(langs sets.Ordered[string]) sets.Ordered[string] {
	if o.GenerateDefaultLanguagePage {
		return langs
	}
	return langs.Without(o.DefaultLanguage)
}

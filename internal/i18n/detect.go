package i18n

import (
	"strings"

	"git.home.luguber.info/inful/pagelocale/internal/config"
)

// detection is the canonical routing state of a page.
type detection struct {
	language     string
	originalPath string
	routed       bool
}

// defaultDetection is used for pages that do not read their language from the path.
func (o Options) defaultDetection(path string) detection {
	return detection{language: o.DefaultLanguage, originalPath: path}
}

// detectLanguage reads the :lang parameter of the page options' language
// pattern. Unknown or missing languages fall back to the default language;
// routed reports whether the path carried a language at all. The second
// result is false when the pattern does not match path.
func (o Options) detectLanguage(path string, po *PageOptions) (detection, bool) {
	params, ok := po.languagePattern().Match(path)
	if !ok {
		return detection{}, false
	}

	lang := params.Get(config.LanguageParam)
	language := o.DefaultLanguage
	if o.Languages.Has(lang) {
		language = lang
	}

	return detection{
		language:     language,
		originalPath: strings.Replace(path, "/"+language, "", 1),
		routed:       lang != "",
	}, true
}

package config

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/language"

	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
	"git.home.luguber.info/inful/pagelocale/internal/pathpattern"
)

// LanguageParam is the path parameter read by pages with GetLanguageFromPath.
const LanguageParam = "lang"

// dynamicNameMeta lists characters that would read as regular expression
// syntax in a dynamic page name. Names are matched as literal prefixes.
const dynamicNameMeta = `\.+*?()|[]{}^$`

// Validate checks the configuration. It is called by Load and Parse; callers
// building a Config by hand should call ApplyDefaults first.
func (c *Config) Validate() error {
	v := &configurationValidator{config: c}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateLanguages(); err != nil {
		return err
	}
	if err := cv.validatePages(); err != nil {
		return err
	}
	if err := cv.validateDynamicPages(); err != nil {
		return err
	}
	if cv.config.Concurrency < 0 {
		return foundationerrors.ValidationError("concurrency cannot be negative").
			WithContext("concurrency", cv.config.Concurrency).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateLanguages() error {
	if len(cv.config.Languages) == 0 {
		return foundationerrors.ValidationError("at least one language must be configured").Build()
	}
	if err := validateTag(cv.config.DefaultLanguage, "default_language"); err != nil {
		return err
	}
	for _, code := range cv.config.Languages {
		if err := validateTag(code, "languages"); err != nil {
			return err
		}
	}
	if !slices.Contains(cv.config.Languages, cv.config.DefaultLanguage) {
		slog.Warn("Default language is not listed in languages",
			"default_language", cv.config.DefaultLanguage,
			"languages", cv.config.Languages)
	}
	return nil
}

func (cv *configurationValidator) validatePages() error {
	for i, opts := range cv.config.Pages {
		pattern, err := pathpattern.Compile(opts.MatchPath)
		if err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "invalid page match_path").
				Fatal().
				WithContext("index", i).
				WithContext("match_path", opts.MatchPath).
				Build()
		}
		if opts.LanguagePath != "" {
			if pattern, err = pathpattern.Compile(opts.LanguagePath); err != nil {
				return foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "invalid page language_path").
					Fatal().
					WithContext("index", i).
					WithContext("language_path", opts.LanguagePath).
					Build()
			}
		}
		for _, code := range opts.Languages {
			if err := validateTag(code, "pages.languages"); err != nil {
				return err
			}
		}
		for _, code := range opts.ExcludeLanguages {
			if err := validateTag(code, "pages.exclude_languages"); err != nil {
				return err
			}
		}
		if opts.GetLanguageFromPath && !slices.Contains(pattern.Names(), LanguageParam) {
			slog.Warn("Page reads its language from the path but the pattern has no :lang parameter",
				"match_path", opts.MatchPath,
				"language_path", opts.LanguagePath)
		}
	}
	return nil
}

func (cv *configurationValidator) validateDynamicPages() error {
	for _, name := range cv.config.DynamicPages {
		if strings.TrimSpace(name) == "" {
			return foundationerrors.ValidationError("dynamic page name cannot be empty").Build()
		}
		if strings.HasPrefix(name, "/") {
			return foundationerrors.ValidationError("dynamic page name must not start with '/'").
				WithContext("name", name).
				Build()
		}
		if i := strings.IndexAny(name, dynamicNameMeta); i >= 0 {
			return foundationerrors.ValidationError("dynamic page name must be a literal path prefix").
				WithContext("name", name).
				WithContext("character", string(name[i])).
				Build()
		}
	}
	return nil
}

func validateTag(code, field string) error {
	if code == "" {
		return foundationerrors.ValidationError("language code cannot be empty").
			WithContext("field", field).
			Build()
	}
	if _, err := language.Parse(code); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "invalid language tag").
			Fatal().
			WithContext("field", field).
			WithContext("language", code).
			Build()
	}
	return nil
}

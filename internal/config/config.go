// Package config loads and validates the localization plugin configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
)

// Config is the plugin configuration as written in pagelocale.yaml.
type Config struct {
	// DefaultLanguage is served by canonical pages. Defaults to "en".
	DefaultLanguage string `yaml:"default_language"`

	// GenerateDefaultLanguagePage also emits a prefixed alternate for DefaultLanguage.
	GenerateDefaultLanguagePage bool `yaml:"generate_default_language_page"`

	// Languages is the ordered set of supported language codes. Defaults to ["en"].
	Languages []string `yaml:"languages"`

	// Pages holds per-pattern overrides; the first matching entry wins.
	Pages []PageOptions `yaml:"pages,omitempty"`

	// DynamicPages names route families rendered client-side (e.g. "blog").
	DynamicPages []string `yaml:"dynamic_pages,omitempty"`

	// Concurrency bounds alternate page creation per page. Defaults to 1.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// PageOptions overrides localization for pages whose path matches MatchPath.
//
// A nil Languages or ExcludeLanguages means "not set"; an explicit empty list
// is set and takes effect. LanguagePath is the pattern the :lang parameter is
// read from when GetLanguageFromPath is set; it defaults to MatchPath.
type PageOptions struct {
	MatchPath           string   `yaml:"match_path"`
	Languages           []string `yaml:"languages,omitempty"`
	ExcludeLanguages    []string `yaml:"exclude_languages,omitempty"`
	GetLanguageFromPath bool     `yaml:"get_language_from_path,omitempty"`
	LanguagePath        string   `yaml:"language_path,omitempty"`
}

// Load reads, defaults and validates the configuration at configPath.
// Variables from .env files and the process environment are expanded first.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, foundationerrors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes YAML configuration, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			Build()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return foundationerrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Config{
		DefaultLanguage: "en",
		Languages:       []string{"en", "fr", "de"},
		Pages: []PageOptions{
			{MatchPath: "/:lang?/blog/:uid", GetLanguageFromPath: true},
			{MatchPath: "/preview", Languages: []string{"en"}},
			{MatchPath: "/legal/*", ExcludeLanguages: []string{"de"}},
		},
		DynamicPages: []string{"app"},
		Concurrency:  4,
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

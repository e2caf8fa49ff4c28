package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/pagelocale/internal/foundation/errors"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, []string{"en"}, cfg.Languages)
	assert.False(t, cfg.GenerateDefaultLanguagePage)
	assert.Empty(t, cfg.Pages)
	assert.Empty(t, cfg.DynamicPages)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestParse_FullConfig(t *testing.T) {
	data := []byte(`
default_language: fr
generate_default_language_page: true
languages: [fr, en, de]
pages:
  - match_path: /:lang?/blog/:uid
    get_language_from_path: true
  - match_path: /legal/*
    exclude_languages: [de]
  - match_path: /preview
    languages: []
dynamic_pages: [app, blog]
concurrency: 4
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.DefaultLanguage)
	assert.True(t, cfg.GenerateDefaultLanguagePage)
	assert.Equal(t, []string{"fr", "en", "de"}, cfg.Languages)
	require.Len(t, cfg.Pages, 3)
	assert.True(t, cfg.Pages[0].GetLanguageFromPath)
	assert.Nil(t, cfg.Pages[0].Languages, "unset languages stay nil")
	assert.Equal(t, []string{"de"}, cfg.Pages[1].ExcludeLanguages)
	assert.NotNil(t, cfg.Pages[2].Languages, "explicit empty list is kept")
	assert.Empty(t, cfg.Pages[2].Languages)
	assert.Equal(t, []string{"app", "blog"}, cfg.DynamicPages)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestParse_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"empty languages":         "languages: []",
		"invalid language tag":    "languages: [en, '??']",
		"invalid default":         "default_language: '??'",
		"malformed pattern":       "pages: [{match_path: 'blog/:id'}]",
		"malformed language_path": "pages: [{match_path: /a, language_path: 'x'}]",
		"invalid page language":   "pages: [{match_path: /a, languages: ['??']}]",
		"invalid exclude":         "pages: [{match_path: /a, exclude_languages: ['']}]",
		"empty dynamic page":      "dynamic_pages: ['']",
		"slash dynamic page":      "dynamic_pages: ['/blog']",
		"regex dynamic page":      "dynamic_pages: ['blog.*']",
		"anchored dynamic page":   "dynamic_pages: ['^app']",
		"alternation dynamic":     "dynamic_pages: ['(blog|news)']",
		"negative concurrency":    "concurrency: -1",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			require.Error(t, err)
			assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation), "got %v", err)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("languages: [en"))
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("PAGELOCALE_DEFAULT", "de")
	path := filepath.Join(t.TempDir(), "pagelocale.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_language: ${PAGELOCALE_DEFAULT}\nlanguages: [de, en]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.DefaultLanguage)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagelocale.yaml")

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr", "de"}, cfg.Languages)
	assert.Len(t, cfg.Pages, 3)

	err = Init(path, false)
	require.Error(t, err, "existing file must not be overwritten without force")
	require.NoError(t, Init(path, true))
}

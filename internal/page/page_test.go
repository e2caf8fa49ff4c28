package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClone_Independent(t *testing.T) {
	orig := Page{
		Path:    "/about",
		Context: map[string]any{"title": "About"},
		I18n:    &LocalizationContext{Language: "en", Languages: []string{"en", "fr"}},
	}

	cp := orig.Clone()
	cp.Context["title"] = "Changed"
	cp.I18n.Language = "fr"
	cp.I18n.Languages[0] = "de"

	require.Equal(t, "About", orig.Context["title"])
	require.Equal(t, "en", orig.I18n.Language)
	require.Equal(t, []string{"en", "fr"}, orig.I18n.Languages)
}

func TestProcessedAndLanguage(t *testing.T) {
	p := Page{Path: "/"}
	require.False(t, p.Processed())
	require.Empty(t, p.Language())

	p.I18n = &LocalizationContext{Language: "de"}
	require.True(t, p.Processed())
	require.Equal(t, "de", p.Language())
}

func TestProcessed_RawContextEntry(t *testing.T) {
	p := Page{Path: "/about", Context: map[string]any{ContextI18nKey: map[string]any{"language": "en"}}}

	require.True(t, p.Processed())
	require.Equal(t, "en", p.Language())
}

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	assert.Contains(t, catalog.Languages(), "en")
	assert.Contains(t, catalog.Languages(), "it")
}

func TestTextFallsBackToEnglish(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	assert.Equal(t, catalog.Text("en", "location"), catalog.Text("xx", "location"))
	assert.NotEmpty(t, catalog.Text("it", "location"))
	assert.NotEqual(t, catalog.Text("en", "location"), catalog.Text("it", "location"))
}

func TestActionForAnyLanguage(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	for _, lang := range catalog.Languages() {
		action, ok := catalog.ActionFor(catalog.Label(lang, "search"))
		require.True(t, ok, "search label for %s must resolve", lang)
		assert.Equal(t, "search", action)
	}

	_, ok := catalog.ActionFor("definitely not a button")
	assert.False(t, ok)
}

func TestEveryLanguageCoversEnglishKeys(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	english := catalog.locales["en"]
	for lang, loc := range catalog.locales {
		for key := range english.Texts {
			assert.Contains(t, loc.Texts, key, "language %s is missing text %q", lang, key)
		}
		for key := range english.Keyboards {
			assert.Contains(t, loc.Keyboards, key, "language %s is missing keyboard %q", lang, key)
		}
	}
}

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facildate/taskboard/internal/storage"
)

func TestTranslatorKnownLanguage(t *testing.T) {
	tr := NewTranslator("fr")
	assert.Equal(t, "Annuler", tr("cancel"))
	assert.Equal(t, "Tâches", tr("tasks"))
}

func TestTranslatorFallsBackToEnglish(t *testing.T) {
	tr := NewTranslator("de")
	assert.Equal(t, "Cancel", tr("cancel"))
}

func TestTranslatorUnknownKeyReturnsKey(t *testing.T) {
	tr := NewTranslator("en")
	assert.Equal(t, "nonexistentKey", tr("nonexistentKey"))
}

func TestEnglishTableCoversAllKeys(t *testing.T) {
	// English is the fallback table, so every key in every other
	// language must exist there.
	en := translations["en"]
	for lang, table := range translations {
		for key := range table {
			_, ok := en[key]
			assert.True(t, ok, "key %q in %q missing from en", key, lang)
		}
	}
}

func TestLanguageStoreDefaultsToEnglish(t *testing.T) {
	s := NewLanguageStore(storage.NewMemory())
	assert.Equal(t, "en", s.Current())
}

func TestLanguageStoreLoadsPersisted(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(storage.KeyLanguage, "fr"))

	s := NewLanguageStore(backend)
	assert.Equal(t, "fr", s.Current())
}

func TestLanguageStoreSetPersistsAndNotifies(t *testing.T) {
	backend := storage.NewMemory()
	s := NewLanguageStore(backend)

	var seen []string
	s.Subscribe(func(lang string) { seen = append(seen, lang) })

	s.Set("fr")

	assert.Equal(t, []string{"en", "fr"}, seen)

	stored, err := backend.Get(storage.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "fr", stored)
}

func TestLanguagesSorted(t *testing.T) {
	assert.Equal(t, []string{"en", "fr"}, Languages())
}

// Package i18n provides the static translation tables and the
// persisted language preference.
package i18n

import "sort"

// DefaultLanguage is used when no preference has been stored.
const DefaultLanguage = "en"

// TranslateFunc looks up the display string for a translation key.
type TranslateFunc func(key string) string

// NewTranslator returns a lookup function for lang. Missing entries
// fall back to the English table, then to the literal key.
func NewTranslator(lang string) TranslateFunc {
	table := translations[lang]
	fallback := translations[DefaultLanguage]

	return func(key string) string {
		if table != nil {
			if s, ok := table[key]; ok {
				return s
			}
		}
		if s, ok := fallback[key]; ok {
			return s
		}
		return key
	}
}

// Languages returns the available language codes in sorted order.
func Languages() []string {
	langs := make([]string, 0, len(translations))
	for code := range translations {
		langs = append(langs, code)
	}
	sort.Strings(langs)
	return langs
}

package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	languageDetectorOnce sync.Once
	languageDetector     lingua.LanguageDetector
)

// DetectLanguage guesses the language of a piece of content and returns its
// lowercase ISO 639-1 code, or an empty string when nothing can be told.
func DetectLanguage(content string) string {
	if len(strings.TrimSpace(content)) == 0 {
		return ""
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Portuguese,
				lingua.Chinese,
				lingua.Japanese,
				lingua.Korean,
			).
			Build()
	})

	if language, ok := languageDetector.DetectLanguageOf(content); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}

	return ""
}

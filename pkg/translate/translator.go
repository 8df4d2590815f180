package translate

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// AutoDetect is the source language value that asks the provider to detect
// the input language itself.
const AutoDetect = "auto"

// Translator defines the interface for translation providers.
// Implementations must be safe for concurrent use: a single instance is
// created at startup and shared by every request handler.
type Translator interface {
	// Translate translates text into targetLang. sourceLang may be empty or
	// AutoDetect to let the provider detect it.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)

	// Detect identifies the language of text.
	Detect(ctx context.Context, text string) (Detection, error)

	// CheckHealth verifies that the provider is ready and operational.
	CheckHealth(ctx context.Context) error

	// SupportedLanguages returns the language codes the provider accepts
	// as a translation target (e.g., ["en", "fr", "es"]).
	SupportedLanguages(ctx context.Context) ([]string, error)

	// Close releases the provider handle.
	Close() error
}

// Detection is the result of a language detection call.
type Detection struct {
	// Language is the detected language code as reported by the provider.
	Language string
	// Confidence is in [0,1]. Nil when the provider reports no confidence.
	Confidence *float64
}

// ConfidenceOrZero returns the detection confidence, or 0 when unknown.
func (d Detection) ConfidenceOrZero() float64 {
	if d.Confidence == nil {
		return 0
	}
	return *d.Confidence
}

// NewDetection builds a Detection with the confidence clamped to [0,1].
func NewDetection(lang string, confidence float64) Detection {
	switch {
	case confidence < 0:
		confidence = 0
	case confidence > 1:
		confidence = 1
	}
	return Detection{Language: lang, Confidence: &confidence}
}

// LanguageMapper handles conversion between client language codes and the
// short codes most backends expect.
type LanguageMapper struct{}

// NewLanguageMapper creates a new language mapper instance.
func NewLanguageMapper() *LanguageMapper {
	return &LanguageMapper{}
}

// ToBackendCode converts a client language code to backend format.
// Examples:
//   - "EN" -> "en"
//   - "fr-CA" -> "fr"
//   - "zh_TW" -> "zh"
func (lm *LanguageMapper) ToBackendCode(clientLang string) string {
	lang := strings.ToLower(strings.TrimSpace(clientLang))
	if idx := strings.IndexAny(lang, "-_"); idx >= 0 {
		lang = lang[:idx]
	}
	return lang
}

// ParseTargetLanguage validates a target language code as a BCP 47 tag.
// Malformed or unknown codes return an error wrapping ErrInvalidTargetLanguage.
// The tag is not canonicalized, so legacy codes such as "tl" or "mo" come
// back as given.
func ParseTargetLanguage(code string) (language.Tag, error) {
	code = strings.TrimSpace(code)
	if code == "" || strings.EqualFold(code, AutoDetect) {
		return language.Und, invalidTarget(code, nil)
	}
	tag, err := language.Raw.Parse(code)
	if err != nil {
		return language.Und, invalidTarget(code, err)
	}
	return tag, nil
}

func isAutoSource(sourceLang string) bool {
	s := strings.TrimSpace(sourceLang)
	return s == "" || strings.EqualFold(s, AutoDetect)
}

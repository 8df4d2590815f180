package gateway

import (
	"errors"
	"strings"

	"github.com/dasmlab/glosa/pkg/translate"
)

// Client-facing messages.
const (
	MsgMissingFields      = "Missing text or target language"
	MsgInvalidTarget      = "Invalid target language selected."
	MsgTranslationFailed  = "Translation failed. Please check the input or try again later."
	MsgDetectionFailed    = "Language detection failed."
	MsgLanguagesFailed    = "Failed to load supported languages."
	DetectedLangNone      = "N/A"
	DetectedLangError     = "Error"
	invalidTargetFragment = "invalid destination language"
)

// isInvalidTarget reports whether err means the target language was rejected.
// Providers wrap translate.ErrInvalidTargetLanguage; third-party errors that
// are not wrapped are recognised by their message.
func isInvalidTarget(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, translate.ErrInvalidTargetLanguage) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), invalidTargetFragment)
}

// translateFailureMessage picks the client message for a failed translation.
func translateFailureMessage(err error) string {
	if isInvalidTarget(err) {
		return MsgInvalidTarget
	}
	return MsgTranslationFailed
}

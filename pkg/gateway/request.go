package gateway

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TranslationRequest is the body of POST /translate.
type TranslationRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

// Validate reports a missing or empty field. Whitespace-only text passes;
// it is handled as an empty translation.
func (r TranslationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required),
		validation.Field(&r.TargetLang, validation.Required),
	)
}

// TranslationResult is the success body of POST /translate.
type TranslationResult struct {
	TranslatedText string `json:"translated_text"`
}

// DetectionResult is the body of GET /detect_lang. Error is set only on
// provider failure.
type DetectionResult struct {
	Error        string  `json:"error,omitempty"`
	DetectedLang string  `json:"detected_lang"`
	Confidence   float64 `json:"confidence"`
}

// Language is one entry of GET /languages.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// LanguagesResult is the success body of GET /languages.
type LanguagesResult struct {
	Languages []Language `json:"languages"`
}

// ErrorResult is the body of every plain error response.
type ErrorResult struct {
	Error string `json:"error"`
}

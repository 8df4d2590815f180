package translate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTargetLanguage is wrapped by every provider when the
	// requested target language is not one it can translate into.
	ErrInvalidTargetLanguage = errors.New("invalid destination language")

	// ErrNoDetection is returned when a provider cannot name a language.
	ErrNoDetection = errors.New("no language detected")

	// ErrEmptyResponse is returned when a provider answers without a result.
	ErrEmptyResponse = errors.New("empty provider response")
)

func invalidTarget(code string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidTargetLanguage, code, cause)
	}
	return fmt.Errorf("%w %q", ErrInvalidTargetLanguage, code)
}

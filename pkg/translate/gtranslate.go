package translate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bregydoc/gtranslate"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// translateFunc matches gtranslate.TranslateWithParams.
type translateFunc func(text string, params gtranslate.TranslationParams) (string, error)

// GTranslateClient implements the Translator interface with the public
// Google Translate web endpoint. The endpoint has no detection API, so
// detection goes to a local Detector.
//
// gtranslate caches its request token in package state, so calls into it
// are serialized. Waiting callers give up when their context ends.
type GTranslateClient struct {
	sem       *semaphore.Weighted
	translate translateFunc
	detector  Detector
	logger    *logrus.Logger
}

// NewGTranslateClient creates a client that detects with detector.
func NewGTranslateClient(detector Detector, logger *logrus.Logger) *GTranslateClient {
	if logger == nil {
		logger = logrus.New()
	}
	if detector == nil {
		detector = NewLinguaDetector(logger)
	}
	return &GTranslateClient{
		sem:       semaphore.NewWeighted(1),
		translate: gtranslate.TranslateWithParams,
		detector:  detector,
		logger:    logger,
	}
}

// Translate translates text through the Google Translate web endpoint.
func (c *GTranslateClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	target, err := ParseTargetLanguage(targetLang)
	if err != nil {
		return "", err
	}
	source := AutoDetect
	if !isAutoSource(sourceLang) {
		source = strings.TrimSpace(sourceLang)
	}

	c.logger.WithFields(logrus.Fields{
		"source_lang": source,
		"target_lang": target.String(),
		"text_length": len(text),
	}).Debug("Translating text with gtranslate")

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	translated, err := c.translate(text, gtranslate.TranslationParams{
		From: source,
		To:   target.String(),
	})
	c.sem.Release(1)
	if err != nil {
		return "", fmt.Errorf("gtranslate: %w", err)
	}

	return translated, nil
}

// Detect delegates to the configured detector.
func (c *GTranslateClient) Detect(ctx context.Context, text string) (Detection, error) {
	return c.detector.Detect(ctx, text)
}

// CheckHealth performs a one-word round trip.
func (c *GTranslateClient) CheckHealth(ctx context.Context) error {
	if _, err := c.Translate(ctx, "hello", "en", "fr"); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// webTargets maps detector codes the web endpoint does not take as a target
// onto the code it does. An empty value means there is no target for it.
var webTargets = map[string]string{
	"nb": "no",
	"nn": "",
}

// SupportedLanguages returns the detector's languages as web endpoint
// target codes.
func (c *GTranslateClient) SupportedLanguages(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	codes := make([]string, 0)
	for _, code := range c.detector.Languages() {
		if mapped, ok := webTargets[code]; ok {
			code = mapped
		}
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// Close is a no-op; the web endpoint holds no connection state.
func (c *GTranslateClient) Close() error {
	return nil
}

package translate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	lingua "github.com/pemistahl/lingua-go"
	"github.com/sirupsen/logrus"
)

// Detector identifies the language of a text. Providers without their own
// detection endpoint delegate to one.
type Detector interface {
	Detect(ctx context.Context, text string) (Detection, error)
	Languages() []string
}

// LinguaDetector detects languages locally with lingua-go.
// The underlying detector is safe for concurrent use.
type LinguaDetector struct {
	detector  lingua.LanguageDetector
	languages []lingua.Language
	logger    *logrus.Logger
}

// NewLinguaDetector builds a detector over the given languages, or over all
// languages lingua knows when none are given.
func NewLinguaDetector(logger *logrus.Logger, languages ...lingua.Language) *LinguaDetector {
	if logger == nil {
		logger = logrus.New()
	}
	if len(languages) == 0 {
		languages = lingua.AllLanguages()
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()

	return &LinguaDetector{
		detector:  detector,
		languages: languages,
		logger:    logger,
	}
}

// Detect returns the most likely language with its confidence.
func (d *LinguaDetector) Detect(ctx context.Context, text string) (Detection, error) {
	if err := ctx.Err(); err != nil {
		return Detection{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Detection{}, ErrNoDetection
	}

	values := d.detector.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 || values[0].Value() == 0 {
		d.logger.WithFields(logrus.Fields{
			"text_length": len(text),
		}).Debug("Lingua could not decide on a language")
		return Detection{}, ErrNoDetection
	}

	best := values[0]
	code := isoCode(best.Language())
	if code == "" {
		return Detection{}, fmt.Errorf("%w: %s has no ISO 639-1 code", ErrNoDetection, best.Language())
	}

	d.logger.WithFields(logrus.Fields{
		"language":   code,
		"confidence": best.Value(),
	}).Debug("Detected language with lingua")

	return NewDetection(code, best.Value()), nil
}

// Languages returns the ISO 639-1 codes the detector was built with, sorted.
func (d *LinguaDetector) Languages() []string {
	codes := make([]string, 0, len(d.languages))
	for _, lang := range d.languages {
		if code := isoCode(lang); code != "" {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

func isoCode(lang lingua.Language) string {
	code := lang.IsoCode639_1()
	if code == lingua.UnknownIsoCode639_1 {
		return ""
	}
	return strings.ToLower(code.String())
}

// Package gateway implements the HTTP handlers that sit between browser
// clients and a translation provider: validation, delegation and mapping of
// provider outcomes onto fixed JSON responses.
package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/dasmlab/glosa/pkg/requestid"
	"github.com/dasmlab/glosa/pkg/translate"
	"github.com/dasmlab/glosa/pkg/web"
)

// Gateway serves the translation endpoints. It owns no state besides the
// injected provider, which must be safe for concurrent use.
type Gateway struct {
	translator translate.Translator
	logger     *logrus.Logger
	page       []byte
}

// New creates a Gateway that delegates to translator.
func New(translator translate.Translator, logger *logrus.Logger) *Gateway {
	if logger == nil {
		logger = logrus.New()
	}
	return &Gateway{
		translator: translator,
		logger:     logger,
		page:       web.Index,
	}
}

// Home serves the landing page.
func (g *Gateway) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(g.page)
}

// Translate handles POST /translate.
func (g *Gateway) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.entry(r).WithError(err).Debug("Rejecting undecodable translation request")
		recordOutcome("translate", outcomeInvalidInput)
		g.writeJSON(w, r, http.StatusBadRequest, ErrorResult{Error: MsgMissingFields})
		return
	}
	if err := req.Validate(); err != nil {
		g.entry(r).WithError(err).Debug("Rejecting incomplete translation request")
		recordOutcome("translate", outcomeInvalidInput)
		g.writeJSON(w, r, http.StatusBadRequest, ErrorResult{Error: MsgMissingFields})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		recordOutcome("translate", outcomeShortCircuit)
		g.writeJSON(w, r, http.StatusOK, TranslationResult{TranslatedText: ""})
		return
	}

	translated, err := g.translator.Translate(r.Context(), req.Text, translate.AutoDetect, req.TargetLang)
	if err != nil {
		msg := translateFailureMessage(err)
		outcome := outcomeFailed
		if msg == MsgInvalidTarget {
			outcome = outcomeInvalidTarget
		}
		g.entry(r).WithError(err).WithFields(logrus.Fields{
			"target_lang": req.TargetLang,
			"text_length": len(req.Text),
		}).Error("Translation error")
		recordOutcome("translate", outcome)
		g.writeJSON(w, r, http.StatusInternalServerError, ErrorResult{Error: msg})
		return
	}

	recordOutcome("translate", outcomeOK)
	g.writeJSON(w, r, http.StatusOK, TranslationResult{TranslatedText: translated})
}

// Detect handles GET /detect_lang. Blank input is answered without calling
// the provider, and unlike Translate it is not an error.
func (g *Gateway) Detect(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if strings.TrimSpace(text) == "" {
		recordOutcome("detect", outcomeShortCircuit)
		g.writeJSON(w, r, http.StatusOK, DetectionResult{DetectedLang: DetectedLangNone, Confidence: 0})
		return
	}

	detection, err := g.translator.Detect(r.Context(), text)
	if err != nil {
		g.entry(r).WithError(err).WithFields(logrus.Fields{
			"text_length": len(text),
		}).Error("Language detection error")
		recordOutcome("detect", outcomeFailed)
		g.writeJSON(w, r, http.StatusInternalServerError, DetectionResult{
			Error:        MsgDetectionFailed,
			DetectedLang: DetectedLangError,
			Confidence:   0,
		})
		return
	}

	recordOutcome("detect", outcomeOK)
	g.writeJSON(w, r, http.StatusOK, DetectionResult{
		DetectedLang: detection.Language,
		Confidence:   detection.ConfidenceOrZero(),
	})
}

// Languages handles GET /languages.
func (g *Gateway) Languages(w http.ResponseWriter, r *http.Request) {
	codes, err := g.translator.SupportedLanguages(r.Context())
	if err != nil {
		g.entry(r).WithError(err).Error("Failed to list supported languages")
		recordOutcome("languages", outcomeFailed)
		g.writeJSON(w, r, http.StatusInternalServerError, ErrorResult{Error: MsgLanguagesFailed})
		return
	}

	namer := display.English.Tags()
	langs := make([]Language, 0, len(codes))
	for _, code := range codes {
		lang := Language{Code: code}
		if tag, err := language.Parse(code); err == nil {
			lang.Name = namer.Name(tag)
		}
		langs = append(langs, lang)
	}

	recordOutcome("languages", outcomeOK)
	g.writeJSON(w, r, http.StatusOK, LanguagesResult{Languages: langs})
}

func (g *Gateway) entry(r *http.Request) *logrus.Entry {
	return g.logger.WithField("request_id", requestid.FromContext(r.Context()))
}

func (g *Gateway) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.entry(r).WithError(err).Warn("Failed to write response")
	}
}

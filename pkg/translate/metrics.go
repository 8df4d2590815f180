package translate

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess       = "success"
	statusFailed        = "error"
	statusInvalidTarget = "invalid_target"
)

var (
	providerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glosa_provider_requests_total",
			Help: "Total number of translation provider calls",
		},
		[]string{"engine", "operation", "status"},
	)

	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glosa_provider_request_duration_seconds",
			Help:    "Duration of translation provider calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
		[]string{"engine", "operation", "status"},
	)

	translationRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glosa_translation_request_size_bytes",
			Help:    "Size of translation request text in bytes",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"engine"},
	)

	translationResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glosa_translation_response_size_bytes",
			Help:    "Size of translated text in bytes",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"engine"},
	)

	detectionConfidence = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glosa_detection_confidence",
			Help:    "Confidence reported for successful detections",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
		[]string{"engine"},
	)
)

// instrumented records metrics around every call of the wrapped Translator.
type instrumented struct {
	engine string
	next   Translator
}

// Instrument wraps t so each provider call is counted and timed.
func Instrument(engine EngineType, t Translator) Translator {
	return &instrumented{engine: string(engine), next: t}
}

func (i *instrumented) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	start := time.Now()
	out, err := i.next.Translate(ctx, text, sourceLang, targetLang)
	i.observe("translate", start, err)

	translationRequestSize.WithLabelValues(i.engine).Observe(float64(len(text)))
	if err == nil {
		translationResponseSize.WithLabelValues(i.engine).Observe(float64(len(out)))
	}
	return out, err
}

func (i *instrumented) Detect(ctx context.Context, text string) (Detection, error) {
	start := time.Now()
	d, err := i.next.Detect(ctx, text)
	i.observe("detect", start, err)
	if err == nil && d.Confidence != nil {
		detectionConfidence.WithLabelValues(i.engine).Observe(*d.Confidence)
	}
	return d, err
}

func (i *instrumented) CheckHealth(ctx context.Context) error {
	start := time.Now()
	err := i.next.CheckHealth(ctx)
	i.observe("health", start, err)
	return err
}

func (i *instrumented) SupportedLanguages(ctx context.Context) ([]string, error) {
	start := time.Now()
	langs, err := i.next.SupportedLanguages(ctx)
	i.observe("languages", start, err)
	return langs, err
}

func (i *instrumented) Close() error {
	return i.next.Close()
}

func (i *instrumented) observe(operation string, start time.Time, err error) {
	status := statusSuccess
	switch {
	case errors.Is(err, ErrInvalidTargetLanguage):
		status = statusInvalidTarget
	case err != nil:
		status = statusFailed
	}
	providerRequestsTotal.WithLabelValues(i.engine, operation, status).Inc()
	providerRequestDuration.WithLabelValues(i.engine, operation, status).Observe(time.Since(start).Seconds())
}

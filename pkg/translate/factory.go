package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// EngineType represents the type of translation engine to use.
type EngineType string

const (
	// EngineGTranslate uses the public Google Translate web endpoint with
	// local lingua detection. It needs no credentials.
	EngineGTranslate EngineType = "gtranslate"
	// EngineLibreTranslate uses a LibreTranslate server.
	EngineLibreTranslate EngineType = "libretranslate"
	// EngineGoogle uses Google Cloud Translation v2.
	EngineGoogle EngineType = "google"
)

// Config holds configuration for creating a Translator instance.
type Config struct {
	// Engine specifies which translation engine to use.
	Engine EngineType
	// BaseURL is the LibreTranslate base URL.
	BaseURL string
	// APIKey is passed to LibreTranslate or Google, depending on the engine.
	APIKey string
	// CredentialsFile is a Google service-account file.
	CredentialsFile string
	// Timeout bounds each provider HTTP call where the engine supports it.
	Timeout time.Duration
	// Detector overrides the detector used by the gtranslate engine.
	Detector Detector
	// Logger is the logger instance to use. If nil, a default logger is created.
	Logger *logrus.Logger
}

// NewTranslator creates the configured Translator, wrapped with metrics.
func NewTranslator(ctx context.Context, cfg Config) (Translator, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	cfg.Logger.WithFields(logrus.Fields{
		"engine":   cfg.Engine,
		"base_url": cfg.BaseURL,
	}).Info("Creating translator instance")

	var (
		t   Translator
		err error
	)
	switch cfg.Engine {
	case EngineGTranslate:
		t = NewGTranslateClient(cfg.Detector, cfg.Logger)
	case EngineLibreTranslate:
		t = NewLibreTranslateClient(LibreTranslateOptions{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
			Logger:  cfg.Logger,
		})
	case EngineGoogle:
		t, err = NewGoogleClient(ctx, GoogleOptions{
			APIKey:          cfg.APIKey,
			CredentialsFile: cfg.CredentialsFile,
			Logger:          cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
	default:
		cfg.Logger.WithFields(logrus.Fields{
			"engine": cfg.Engine,
		}).Error("Unknown translation engine")
		return nil, fmt.Errorf("unknown translation engine: %s", cfg.Engine)
	}

	return Instrument(cfg.Engine, t), nil
}

// ParseEngineType parses a string into an EngineType.
// Returns an error if the string is not a valid engine type.
func ParseEngineType(s string) (EngineType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gtranslate", "googletrans":
		return EngineGTranslate, nil
	case "libretranslate":
		return EngineLibreTranslate, nil
	case "google", "google-cloud":
		return EngineGoogle, nil
	default:
		return "", fmt.Errorf("unknown engine type: %s (supported: gtranslate, libretranslate, google)", s)
	}
}

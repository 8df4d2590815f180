package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	cloudtranslate "cloud.google.com/go/translate"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleOptions configures a GoogleClient. With neither field set the client
// falls back to Application Default Credentials.
type GoogleOptions struct {
	APIKey          string
	CredentialsFile string
	Logger          *logrus.Logger
}

// GoogleClient implements the Translator interface using Google Cloud
// Translation v2. The wrapped client is created once and is safe for
// concurrent use.
type GoogleClient struct {
	client *cloudtranslate.Client
	logger *logrus.Logger
}

// NewGoogleClient dials Google Cloud Translation.
func NewGoogleClient(ctx context.Context, opts GoogleOptions) (*GoogleClient, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	var clientOpts []option.ClientOption
	switch {
	case opts.APIKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	client, err := cloudtranslate.NewClient(ctx, clientOpts...)
	if err != nil {
		opts.Logger.WithError(err).Error("Failed to create Google Translate client")
		return nil, fmt.Errorf("create google translate client: %w", err)
	}

	return &GoogleClient{client: client, logger: opts.Logger}, nil
}

// Translate translates text with Google Cloud Translation.
func (c *GoogleClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	target, err := ParseTargetLanguage(targetLang)
	if err != nil {
		return "", err
	}

	var translateOpts *cloudtranslate.Options
	if !isAutoSource(sourceLang) {
		source, err := language.Parse(sourceLang)
		if err != nil {
			return "", fmt.Errorf("invalid source language %q: %w", sourceLang, err)
		}
		translateOpts = &cloudtranslate.Options{Source: source, Format: cloudtranslate.Text}
	} else {
		translateOpts = &cloudtranslate.Options{Format: cloudtranslate.Text}
	}

	c.logger.WithFields(logrus.Fields{
		"source_lang": sourceLang,
		"target_lang": target.String(),
		"text_length": len(text),
	}).Debug("Translating text with Google Cloud Translation")

	translations, err := c.client.Translate(ctx, []string{text}, target, translateOpts)
	if err != nil {
		return "", googleError("translate", err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("translate: %w", ErrEmptyResponse)
	}

	return translations[0].Text, nil
}

// Detect identifies the language of text with Google Cloud Translation.
func (c *GoogleClient) Detect(ctx context.Context, text string) (Detection, error) {
	detections, err := c.client.DetectLanguage(ctx, []string{text})
	if err != nil {
		return Detection{}, googleError("detect", err)
	}
	if len(detections) == 0 || len(detections[0]) == 0 {
		return Detection{}, ErrNoDetection
	}

	best := detections[0][0]
	for _, d := range detections[0][1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}
	if best.Language == language.Und {
		return Detection{}, ErrNoDetection
	}

	c.logger.WithFields(logrus.Fields{
		"language":    best.Language.String(),
		"confidence":  best.Confidence,
		"is_reliable": best.IsReliable,
	}).Debug("Detected language with Google Cloud Translation")

	return NewDetection(best.Language.String(), best.Confidence), nil
}

// CheckHealth lists languages to confirm credentials and connectivity.
func (c *GoogleClient) CheckHealth(ctx context.Context) error {
	if _, err := c.client.SupportedLanguages(ctx, language.English); err != nil {
		return fmt.Errorf("health check failed: %w", googleError("languages", err))
	}
	return nil
}

// SupportedLanguages returns the target languages Google supports.
func (c *GoogleClient) SupportedLanguages(ctx context.Context) ([]string, error) {
	langs, err := c.client.SupportedLanguages(ctx, language.English)
	if err != nil {
		return nil, googleError("languages", err)
	}
	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		codes = append(codes, l.Tag.String())
	}
	return codes, nil
}

// Close closes the underlying client.
func (c *GoogleClient) Close() error {
	return c.client.Close()
}

// googleError maps a 400 about the language pair to ErrInvalidTargetLanguage.
func googleError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
		msg := strings.ToLower(apiErr.Message)
		if strings.Contains(msg, "language") || strings.Contains(msg, "invalid value") {
			return fmt.Errorf("%s: %w: %s", op, ErrInvalidTargetLanguage, apiErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

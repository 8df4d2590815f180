package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultLibreTranslateURL is the default base URL for LibreTranslate API.
	DefaultLibreTranslateURL = "http://localhost:5000"
	// DefaultLibreTranslateTimeout is the default timeout for HTTP requests.
	DefaultLibreTranslateTimeout = 30 * time.Second
)

// LibreTranslateClient implements the Translator interface using LibreTranslate.
// LibreTranslate is a self-hosted, open-source machine translation API.
// http.Client is safe for concurrent use, so one client serves all requests.
type LibreTranslateClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	mapper     *LanguageMapper
	logger     *logrus.Logger
}

// LibreTranslateOptions configures a LibreTranslateClient.
type LibreTranslateOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *logrus.Logger
}

// NewLibreTranslateClient creates a new LibreTranslate client.
func NewLibreTranslateClient(opts LibreTranslateOptions) *LibreTranslateClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultLibreTranslateURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultLibreTranslateTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	return &LibreTranslateClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		mapper: NewLanguageMapper(),
		logger: opts.Logger,
	}
}

// translateRequest represents a LibreTranslate API request.
type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// translateResponse represents a LibreTranslate API response.
type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

type detectRequest struct {
	Q      string `json:"q"`
	APIKey string `json:"api_key,omitempty"`
}

type detectResponse struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// languagesResponse represents the response from the /languages endpoint.
type languagesResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Translate translates text from source language to target language.
func (c *LibreTranslateClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	source := AutoDetect
	if !isAutoSource(sourceLang) {
		source = c.mapper.ToBackendCode(sourceLang)
	}
	target := c.mapper.ToBackendCode(targetLang)
	if target == "" {
		return "", invalidTarget(targetLang, nil)
	}

	c.logger.WithFields(logrus.Fields{
		"source_lang": source,
		"target_lang": target,
		"text_length": len(text),
	}).Debug("Translating text with LibreTranslate")

	var ltResp translateResponse
	duration, err := c.postJSON(ctx, "/translate", translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: c.apiKey,
	}, &ltResp)
	if err != nil {
		return "", err
	}

	c.logger.WithFields(logrus.Fields{
		"source_lang": source,
		"target_lang": target,
		"duration_ms": duration.Milliseconds(),
	}).Info("Translation completed successfully")

	return ltResp.TranslatedText, nil
}

// Detect identifies the language of text with the /detect endpoint.
// LibreTranslate reports confidence as a percentage; it is scaled to [0,1].
func (c *LibreTranslateClient) Detect(ctx context.Context, text string) (Detection, error) {
	c.logger.WithFields(logrus.Fields{
		"text_length": len(text),
	}).Debug("Detecting language with LibreTranslate")

	var candidates []detectResponse
	if _, err := c.postJSON(ctx, "/detect", detectRequest{Q: text, APIKey: c.apiKey}, &candidates); err != nil {
		return Detection{}, err
	}
	if len(candidates) == 0 || candidates[0].Language == "" {
		return Detection{}, ErrNoDetection
	}

	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.Confidence > best.Confidence {
			best = cand
		}
	}

	return NewDetection(best.Language, best.Confidence/100), nil
}

// CheckHealth verifies that LibreTranslate is ready and operational.
func (c *LibreTranslateClient) CheckHealth(ctx context.Context) error {
	c.logger.Debug("Checking LibreTranslate health")

	// The /languages endpoint doubles as a health check.
	if _, err := c.languages(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	c.logger.Debug("LibreTranslate health check passed")
	return nil
}

// SupportedLanguages returns a list of language codes supported by LibreTranslate.
func (c *LibreTranslateClient) SupportedLanguages(ctx context.Context) ([]string, error) {
	c.logger.Debug("Fetching supported languages from LibreTranslate")

	languages, err := c.languages(ctx)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(languages))
	for _, lang := range languages {
		codes = append(codes, lang.Code)
	}

	c.logger.WithFields(logrus.Fields{
		"count": len(codes),
	}).Debug("Fetched supported languages")

	return codes, nil
}

// Close releases idle connections.
func (c *LibreTranslateClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *LibreTranslateClient) languages(ctx context.Context) ([]languagesResponse, error) {
	url := c.baseURL + "/languages"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.WithError(err).Error("Failed to create languages request")
		return nil, fmt.Errorf("create languages request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"url": url,
		}).Error("Languages request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
		}).Error("Languages request returned non-OK status")
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var languages []languagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&languages); err != nil {
		c.logger.WithError(err).Error("Failed to decode languages response")
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return languages, nil
}

// postJSON sends payload to path and decodes a 200 response into out.
func (c *LibreTranslateClient) postJSON(ctx context.Context, path string, payload, out any) (time.Duration, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		c.logger.WithError(err).Error("Failed to encode request")
		return 0, fmt.Errorf("encode request: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		c.logger.WithError(err).Error("Failed to create request")
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"url": url,
		}).Error("LibreTranslate request failed")
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(startTime)
	c.logger.WithFields(logrus.Fields{
		"path":        path,
		"status_code": resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	}).Debug("LibreTranslate request completed")

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.WithFields(logrus.Fields{
			"path":        path,
			"status_code": resp.StatusCode,
			"response":    string(bodyBytes),
		}).Error("LibreTranslate request returned non-OK status")
		return duration, statusError(resp.StatusCode, bodyBytes)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.WithError(err).Error("Failed to decode response")
		return duration, fmt.Errorf("decode response: %w", err)
	}
	return duration, nil
}

// statusError turns a non-200 LibreTranslate answer into an error. A 400
// complaining about an unsupported language is an invalid target.
func statusError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		msg = apiErr.Error
	}

	if status == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "not supported") {
		return fmt.Errorf("%w: %s", ErrInvalidTargetLanguage, msg)
	}
	return fmt.Errorf("unexpected status %d: %s", status, msg)
}

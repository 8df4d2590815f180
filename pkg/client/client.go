// Package client is a Go client for the gateway's JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dasmlab/glosa/pkg/gateway"
	"github.com/dasmlab/glosa/pkg/requestid"
)

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to a running gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL, e.g. http://localhost:5000.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]string
	return c.do(ctx, http.MethodGet, "/health", nil, &out)
}

// Translate calls POST /translate.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	var out gateway.TranslationResult
	err := c.do(ctx, http.MethodPost, "/translate", gateway.TranslationRequest{Text: text, TargetLang: targetLang}, &out)
	return out.TranslatedText, err
}

// Detect calls GET /detect_lang.
func (c *Client) Detect(ctx context.Context, text string) (gateway.DetectionResult, error) {
	var out gateway.DetectionResult
	err := c.do(ctx, http.MethodGet, "/detect_lang?text="+url.QueryEscape(text), nil, &out)
	return out, err
}

// Languages calls GET /languages.
func (c *Client) Languages(ctx context.Context) ([]gateway.Language, error) {
	var out gateway.LanguagesResult
	err := c.do(ctx, http.MethodGet, "/languages", nil, &out)
	return out.Languages, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestid.Header, requestid.New())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var apiErr gateway.ErrorResult
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

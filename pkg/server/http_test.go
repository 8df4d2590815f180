package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/dasmlab/glosa/pkg/gateway"
	"github.com/dasmlab/glosa/pkg/requestid"
	"github.com/dasmlab/glosa/pkg/translate"
)

type echoTranslator struct{}

func (echoTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return "[" + targetLang + "] " + text, nil
}

func (echoTranslator) Detect(ctx context.Context, text string) (translate.Detection, error) {
	return translate.NewDetection("en", 0.5), nil
}

func (echoTranslator) CheckHealth(ctx context.Context) error { return nil }

func (echoTranslator) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{"en", "fr"}, nil
}

func (echoTranslator) Close() error { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	s := NewHTTPServer(gateway.New(echoTranslator{}, logger), logger, "127.0.0.1", 0)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, hook
}

func TestHTTPServer_Routes(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name         string
		method       string
		path         string
		body         string
		wantStatus   int
		wantContains string
	}{
		{name: "landing page", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantContains: "<html"},
		{name: "static script", method: http.MethodGet, path: "/static/script.js", wantStatus: http.StatusOK, wantContains: "detect_lang"},
		{name: "static stylesheet", method: http.MethodGet, path: "/static/style.css", wantStatus: http.StatusOK, wantContains: ".panel"},
		{name: "missing asset", method: http.MethodGet, path: "/static/nope.js", wantStatus: http.StatusNotFound},
		{
			name:         "translate",
			method:       http.MethodPost,
			path:         "/translate",
			body:         `{"text":"hi","target_lang":"fr"}`,
			wantStatus:   http.StatusOK,
			wantContains: `"translated_text":"[fr] hi"`,
		},
		{name: "translate wrong method", method: http.MethodGet, path: "/translate", wantStatus: http.StatusMethodNotAllowed},
		{name: "detect", method: http.MethodGet, path: "/detect_lang?text=hello", wantStatus: http.StatusOK, wantContains: `"detected_lang":"en"`},
		{name: "detect wrong method", method: http.MethodPost, path: "/detect_lang", wantStatus: http.StatusMethodNotAllowed},
		{name: "languages", method: http.MethodGet, path: "/languages", wantStatus: http.StatusOK, wantContains: `"code":"fr"`},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK, wantContains: `"status":"healthy"`},
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, resp.StatusCode, tt.wantStatus)
			}
			if tt.wantContains != "" && !strings.Contains(string(body), tt.wantContains) {
				t.Errorf("%s %s body %q does not contain %q", tt.method, tt.path, body, tt.wantContains)
			}
		})
	}
}

func TestHTTPServer_MetricsExposeRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), `glosa_http_requests_total{method="GET",route="GET /health",status="200"}`) {
		t.Error("metrics output is missing the /health request counter")
	}
}

func TestHTTPServer_RequestID(t *testing.T) {
	ts, hook := newTestServer(t)

	t.Run("generated", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if _, err := uuid.Parse(resp.Header.Get(requestid.Header)); err != nil {
			t.Errorf("response request id %q is not a UUID", resp.Header.Get(requestid.Header))
		}
	})

	t.Run("propagated into logs", func(t *testing.T) {
		id := uuid.NewString()
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/detect_lang?text=hi", nil)
		req.Header.Set(requestid.Header, id)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		var result gateway.DetectionResult
		_ = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()

		if got := resp.Header.Get(requestid.Header); got != id {
			t.Errorf("response request id = %q, want %q", got, id)
		}
		last := hook.LastEntry()
		if last == nil || last.Level != logrus.InfoLevel || last.Data["request_id"] != id {
			t.Errorf("access log entry = %+v, want request_id %s", last, id)
		}
	})
}

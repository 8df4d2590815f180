package translate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newLibreServer(t *testing.T, handler http.HandlerFunc) *LibreTranslateClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewLibreTranslateClient(LibreTranslateOptions{
		BaseURL: srv.URL + "/",
		APIKey:  "secret",
		Logger:  quietLogger(),
	})
}

func TestLibreTranslateClient_Translate(t *testing.T) {
	var got translateRequest
	client := newLibreServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "Bonjour"})
	})

	out, err := client.Translate(context.Background(), "Hello", "", "fr-CA")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "Bonjour" {
		t.Errorf("Translate() = %q, want %q", out, "Bonjour")
	}

	want := translateRequest{Q: "Hello", Source: "auto", Target: "fr", Format: "text", APIKey: "secret"}
	if got != want {
		t.Errorf("request payload = %+v, want %+v", got, want)
	}
}

func TestLibreTranslateClient_TranslateErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantInvalid   bool
		wantSubstring string
	}{
		{
			name:          "unsupported target",
			status:        http.StatusBadRequest,
			body:          `{"error":"xx is not supported"}`,
			wantInvalid:   true,
			wantSubstring: "xx is not supported",
		},
		{
			name:          "other bad request",
			status:        http.StatusBadRequest,
			body:          `{"error":"Invalid request: missing q parameter"}`,
			wantInvalid:   false,
			wantSubstring: "unexpected status 400",
		},
		{
			name:          "server error with plain body",
			status:        http.StatusInternalServerError,
			body:          "boom",
			wantInvalid:   false,
			wantSubstring: "unexpected status 500: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newLibreServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.Translate(context.Background(), "Hello", "en", "xx")
			if err == nil {
				t.Fatal("Translate() expected error, got nil")
			}
			if got := errors.Is(err, ErrInvalidTargetLanguage); got != tt.wantInvalid {
				t.Errorf("errors.Is(err, ErrInvalidTargetLanguage) = %v, want %v (err: %v)", got, tt.wantInvalid, err)
			}
			if !strings.Contains(err.Error(), tt.wantSubstring) {
				t.Errorf("error %q does not contain %q", err, tt.wantSubstring)
			}
		})
	}
}

func TestLibreTranslateClient_Detect(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantLang string
		wantConf float64
		wantErr  error
	}{
		{
			name:     "single candidate",
			body:     `[{"language":"fr","confidence":90.0}]`,
			wantLang: "fr",
			wantConf: 0.9,
		},
		{
			name:     "highest confidence wins",
			body:     `[{"language":"es","confidence":20.0},{"language":"pt","confidence":75.0}]`,
			wantLang: "pt",
			wantConf: 0.75,
		},
		{
			name:    "no candidates",
			body:    `[]`,
			wantErr: ErrNoDetection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newLibreServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/detect" {
					http.NotFound(w, r)
					return
				}
				_, _ = io.WriteString(w, tt.body)
			})

			d, err := client.Detect(context.Background(), "Bonjour tout le monde")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Detect() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if d.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", d.Language, tt.wantLang)
			}
			if got := d.ConfidenceOrZero(); got != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", got, tt.wantConf)
			}
		})
	}
}

func TestLibreTranslateClient_Languages(t *testing.T) {
	var unhealthy atomic.Bool
	client := newLibreServer(t, func(w http.ResponseWriter, r *http.Request) {
		if unhealthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `[{"code":"en","name":"English"},{"code":"fr","name":"French"}]`)
	})

	langs, err := client.SupportedLanguages(context.Background())
	if err != nil {
		t.Fatalf("SupportedLanguages() error = %v", err)
	}
	if strings.Join(langs, ",") != "en,fr" {
		t.Errorf("SupportedLanguages() = %v, want [en fr]", langs)
	}
	if err := client.CheckHealth(context.Background()); err != nil {
		t.Errorf("CheckHealth() error = %v", err)
	}

	unhealthy.Store(true)
	if err := client.CheckHealth(context.Background()); err == nil {
		t.Error("CheckHealth() expected error for unavailable server")
	}
}

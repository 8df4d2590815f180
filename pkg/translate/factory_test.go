package translate

import (
	"context"
	"testing"
)

func TestParseEngineType(t *testing.T) {
	tests := []struct {
		in      string
		want    EngineType
		wantErr bool
	}{
		{in: "gtranslate", want: EngineGTranslate},
		{in: "googletrans", want: EngineGTranslate},
		{in: "LibreTranslate", want: EngineLibreTranslate},
		{in: " LIBRETRANSLATE ", want: EngineLibreTranslate},
		{in: "google", want: EngineGoogle},
		{in: "google-cloud", want: EngineGoogle},
		{in: "argos", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEngineType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEngineType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEngineType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewTranslator(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "gtranslate with injected detector",
			cfg:  Config{Engine: EngineGTranslate, Detector: &stubDetector{}},
		},
		{
			name: "libretranslate",
			cfg:  Config{Engine: EngineLibreTranslate, BaseURL: "http://127.0.0.1:1"},
		},
		{
			name:    "unknown engine",
			cfg:     Config{Engine: "argos"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Logger = quietLogger()
			tr, err := NewTranslator(context.Background(), tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewTranslator() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTranslator() error = %v", err)
			}
			defer tr.Close()

			inst, ok := tr.(*instrumented)
			if !ok {
				t.Fatalf("NewTranslator() returned %T, want instrumented wrapper", tr)
			}
			if inst.engine != string(tt.cfg.Engine) {
				t.Errorf("engine label = %q, want %q", inst.engine, tt.cfg.Engine)
			}
		})
	}
}

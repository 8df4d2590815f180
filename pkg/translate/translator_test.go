package translate

import (
	"errors"
	"testing"
)

func TestLanguageMapper_ToBackendCode(t *testing.T) {
	lm := NewLanguageMapper()
	tests := map[string]string{
		"EN":     "en",
		"fr-CA":  "fr",
		"zh_TW":  "zh",
		" de ":   "de",
		"":       "",
		"pt-BR ": "pt",
	}
	for in, want := range tests {
		if got := lm.ToBackendCode(in); got != want {
			t.Errorf("ToBackendCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseTargetLanguage(t *testing.T) {
	tests := []struct {
		code    string
		want    string
		wantErr bool
	}{
		{code: "fr", want: "fr"},
		{code: "zh-cn", want: "zh-CN"},
		{code: " es ", want: "es"},
		{code: "tl", want: "tl"},
		{code: "mo", want: "mo"},
		{code: "sh", want: "sh"},
		{code: "", wantErr: true},
		{code: "auto", wantErr: true},
		{code: "not a language", wantErr: true},
		{code: "zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			tag, err := ParseTargetLanguage(tt.code)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTargetLanguage) {
					t.Fatalf("ParseTargetLanguage(%q) error = %v, want ErrInvalidTargetLanguage", tt.code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTargetLanguage(%q) error = %v", tt.code, err)
			}
			if tag.String() != tt.want {
				t.Errorf("ParseTargetLanguage(%q) = %q, want %q", tt.code, tag, tt.want)
			}
		})
	}
}

func TestNewDetection_ClampsConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: -0.5, want: 0},
		{in: 0.42, want: 0.42},
		{in: 1.7, want: 1},
	}
	for _, tt := range tests {
		if got := NewDetection("en", tt.in).ConfidenceOrZero(); got != tt.want {
			t.Errorf("NewDetection(%v) confidence = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := (Detection{Language: "en"}).ConfidenceOrZero(); got != 0 {
		t.Errorf("ConfidenceOrZero() without confidence = %v, want 0", got)
	}
}

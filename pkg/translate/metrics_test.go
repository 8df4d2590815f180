package translate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// fakeTranslator returns canned results.
type fakeTranslator struct {
	translateErr error
	detectErr    error
}

func (f *fakeTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if f.translateErr != nil {
		return "", f.translateErr
	}
	return text, nil
}

func (f *fakeTranslator) Detect(ctx context.Context, text string) (Detection, error) {
	if f.detectErr != nil {
		return Detection{}, f.detectErr
	}
	return NewDetection("en", 0.9), nil
}

func (f *fakeTranslator) CheckHealth(ctx context.Context) error { return nil }

func (f *fakeTranslator) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{"en"}, nil
}

func (f *fakeTranslator) Close() error { return nil }

func TestInstrument_CountsByStatus(t *testing.T) {
	tests := []struct {
		name       string
		engine     EngineType
		fake       *fakeTranslator
		operation  string
		wantStatus string
	}{
		{
			name:       "translate success",
			engine:     "metrics-ok",
			fake:       &fakeTranslator{},
			operation:  "translate",
			wantStatus: statusSuccess,
		},
		{
			name:       "translate invalid target",
			engine:     "metrics-invalid",
			fake:       &fakeTranslator{translateErr: fmt.Errorf("wrap: %w", ErrInvalidTargetLanguage)},
			operation:  "translate",
			wantStatus: statusInvalidTarget,
		},
		{
			name:       "detect failure",
			engine:     "metrics-detect",
			fake:       &fakeTranslator{detectErr: errors.New("boom")},
			operation:  "detect",
			wantStatus: statusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := providerRequestsTotal.WithLabelValues(string(tt.engine), tt.operation, tt.wantStatus)
			before := testutil.ToFloat64(counter)

			tr := Instrument(tt.engine, tt.fake)
			switch tt.operation {
			case "translate":
				_, _ = tr.Translate(context.Background(), "hi", "", "fr")
			case "detect":
				_, _ = tr.Detect(context.Background(), "hi")
			}

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("%s/%s counter delta = %v, want 1", tt.operation, tt.wantStatus, got)
			}
		})
	}
}

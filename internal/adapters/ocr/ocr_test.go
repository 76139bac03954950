package ocr

import (
	"testing"
	"time"

	"github.com/cp25sy5-modjot/ocr-service/internal/config"
)

func TestNewFactory(t *testing.T) {
	base := config.Config{
		Tesseract: config.TesseractConfig{PageSegMode: 3},
		Paddle:    config.PaddleConfig{URL: "http://paddle-{lang}:8080", API: "pipeline", Timeout: time.Second},
		Typhoon:   config.TyphoonConfig{BaseURL: "http://localhost/v1", Model: "typhoon-ocr-preview", MaxTokens: 100, Timeout: time.Second},
	}

	for _, name := range []string{config.EngineTesseract, config.EnginePaddle, config.EngineTyphoon} {
		cfg := base
		cfg.Engine = name
		f, err := NewFactory(&cfg)
		if err != nil {
			t.Fatalf("NewFactory(%s) error = %v", name, err)
		}
		if f.Name() != name {
			t.Fatalf("NewFactory(%s).Name() = %q", name, f.Name())
		}
	}
}

func TestNewFactoryErrors(t *testing.T) {
	cfg := config.Config{Engine: "easyocr"}
	if f, err := NewFactory(&cfg); err == nil || f != nil {
		t.Fatalf("NewFactory(unknown) = %v, %v, want error", f, err)
	}

	cfg = config.Config{Engine: config.EnginePaddle, Paddle: config.PaddleConfig{URL: "http://x", API: "grpc"}}
	if f, err := NewFactory(&cfg); err == nil || f != nil {
		t.Fatalf("NewFactory(bad paddle api) = %v, %v, want error", f, err)
	}
}

// Package ocr selects the OCR engine implementation.
package ocr

import (
	"fmt"

	"github.com/cp25sy5-modjot/ocr-service/internal/adapters/ocr/paddle"
	"github.com/cp25sy5-modjot/ocr-service/internal/adapters/ocr/tesseract"
	"github.com/cp25sy5-modjot/ocr-service/internal/adapters/ocr/typhoon"
	"github.com/cp25sy5-modjot/ocr-service/internal/config"
	"github.com/cp25sy5-modjot/ocr-service/internal/ports"
)

func NewFactory(cfg *config.Config) (ports.EngineFactory, error) {
	switch cfg.Engine {
	case config.EngineTesseract:
		return tesseract.NewFactory(tesseract.Options{
			TessdataPrefix: cfg.Tesseract.TessdataPrefix,
			PageSegMode:    cfg.Tesseract.PageSegMode,
		}), nil
	case config.EnginePaddle:
		f, err := paddle.NewFactory(paddle.Options{
			URL:     cfg.Paddle.URL,
			API:     cfg.Paddle.API,
			Timeout: cfg.Paddle.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.EngineTyphoon:
		f, err := typhoon.NewFactory(typhoon.Options{
			BaseURL: cfg.Typhoon.BaseURL,
			APIKey:  cfg.Typhoon.APIKey,
			Params: typhoon.Params{
				Model:       cfg.Typhoon.Model,
				MaxTokens:   cfg.Typhoon.MaxTokens,
				Temperature: typhoon.DefaultParams().Temperature,
				TopP:        typhoon.DefaultParams().TopP,
			},
			MaxSide: cfg.Typhoon.MaxSide,
			Timeout: cfg.Typhoon.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
}

// Package config holds the server settings and the command-line flags they
// are read from.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

const (
	EngineTesseract = "tesseract"
	EnginePaddle    = "paddle"
	EngineTyphoon   = "typhoon"

	LogFormatAuto    = "auto"
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

type Config struct {
	GRPCAddr    string
	MetricsAddr string
	Debug       bool
	LogFormat   string

	Engine      string
	DefaultLang string
	MaxEngines  int
	Preload     bool

	MaxConcurrentRecognitions int64
	GRPCWorkers               int
	MaxImageBytes             int
	MaxImagePixels            int
	MinConfidence             float64
	ShutdownGrace             time.Duration

	Tesseract TesseractConfig
	Paddle    PaddleConfig
	Typhoon   TyphoonConfig
}

type TesseractConfig struct {
	TessdataPrefix string
	PageSegMode    int
}

type PaddleConfig struct {
	URL     string
	API     string
	Timeout time.Duration
}

type TyphoonConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	MaxSide   int
	Timeout   time.Duration
}

// ServeFlags are the flags of the serve command.
func ServeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "grpc-addr",
			EnvVars: []string{"OCR_GRPC_ADDR", "GRPC_ADDR"},
			Value:   ":50051",
		},
		&cli.StringFlag{
			Name:    "metrics-addr",
			Usage:   "prometheus listen address, empty disables it",
			EnvVars: []string{"OCR_METRICS_ADDR"},
			Value:   ":9090",
		},
		&cli.BoolFlag{
			Name:    "debug",
			EnvVars: []string{"OCR_DEBUG"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "auto, json or console",
			EnvVars: []string{"OCR_LOG_FORMAT"},
			Value:   LogFormatAuto,
		},
		&cli.StringFlag{
			Name:    "engine",
			Usage:   "tesseract, paddle or typhoon",
			EnvVars: []string{"OCR_ENGINE"},
			Value:   EngineTesseract,
		},
		&cli.StringFlag{
			Name:    "default-lang",
			Usage:   "language used when a request carries no hint",
			EnvVars: []string{"OCR_DEFAULT_LANG"},
			Value:   "de",
		},
		&cli.IntFlag{
			Name:    "max-engines",
			Usage:   "number of language engines kept loaded at once",
			EnvVars: []string{"OCR_MAX_ENGINES"},
			Value:   1,
		},
		&cli.BoolFlag{
			Name:    "preload",
			Usage:   "load the default language engine at start-up",
			EnvVars: []string{"OCR_PRELOAD"},
			Value:   true,
		},
		&cli.Int64Flag{
			Name:    "max-concurrent-recognitions",
			EnvVars: []string{"OCR_MAX_CONCURRENT_RECOGNITIONS"},
			Value:   4,
		},
		&cli.IntFlag{
			Name:    "grpc-workers",
			EnvVars: []string{"OCR_GRPC_WORKERS"},
			Value:   4,
		},
		&cli.IntFlag{
			Name:    "max-image-bytes",
			EnvVars: []string{"OCR_MAX_IMAGE_BYTES"},
			Value:   16 << 20,
		},
		&cli.IntFlag{
			Name:    "max-image-pixels",
			EnvVars: []string{"OCR_MAX_IMAGE_PIXELS"},
			Value:   50_000_000,
		},
		&cli.Float64Flag{
			Name:    "min-confidence",
			Usage:   "drop lines scored below this value (0..1)",
			EnvVars: []string{"OCR_MIN_CONFIDENCE"},
		},
		&cli.DurationFlag{
			Name:    "shutdown-grace",
			Usage:   "drain in-flight calls for this long before stopping, 0 stops immediately",
			EnvVars: []string{"OCR_SHUTDOWN_GRACE"},
		},
		&cli.StringFlag{
			Name:    "tessdata-prefix",
			EnvVars: []string{"OCR_TESSDATA_PREFIX"},
		},
		&cli.IntFlag{
			Name:    "tesseract-psm",
			Usage:   "tesseract page segmentation mode",
			EnvVars: []string{"OCR_TESSERACT_PSM"},
			Value:   3,
		},
		&cli.StringFlag{
			Name:    "paddle-url",
			Usage:   `paddle server base url, "{lang}" is replaced by the language`,
			EnvVars: []string{"OCR_PADDLE_URL"},
			Value:   "http://localhost:8080",
		},
		&cli.StringFlag{
			Name:    "paddle-api",
			Usage:   "pipeline (PaddleX serving) or hub (PaddleHub ocr_system)",
			EnvVars: []string{"OCR_PADDLE_API"},
			Value:   "pipeline",
		},
		&cli.DurationFlag{
			Name:    "paddle-timeout",
			EnvVars: []string{"OCR_PADDLE_TIMEOUT"},
			Value:   time.Minute,
		},
		&cli.StringFlag{
			Name:    "typhoon-base-url",
			EnvVars: []string{"OCR_TYPHOON_BASE_URL"},
			Value:   "https://api.opentyphoon.ai/v1",
		},
		&cli.StringFlag{
			Name:    "typhoon-api-key",
			EnvVars: []string{"OCR_TYPHOON_API_KEY", "TYPHOON_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "typhoon-model",
			EnvVars: []string{"OCR_TYPHOON_MODEL"},
			Value:   "typhoon-ocr-preview",
		},
		&cli.IntFlag{
			Name:    "typhoon-max-tokens",
			EnvVars: []string{"OCR_TYPHOON_MAX_TOKENS"},
			Value:   16000,
		},
		&cli.IntFlag{
			Name:    "typhoon-max-side",
			EnvVars: []string{"OCR_TYPHOON_MAX_SIDE"},
			Value:   1800,
		},
		&cli.DurationFlag{
			Name:    "typhoon-timeout",
			EnvVars: []string{"OCR_TYPHOON_TIMEOUT"},
			Value:   5 * time.Minute,
		},
	}
}

// FromCLI reads a Config from the flags declared by ServeFlags.
func FromCLI(c *cli.Context) (*Config, error) {
	cfg := &Config{
		GRPCAddr:    c.String("grpc-addr"),
		MetricsAddr: c.String("metrics-addr"),
		Debug:       c.Bool("debug"),
		LogFormat:   c.String("log-format"),

		Engine:      c.String("engine"),
		DefaultLang: c.String("default-lang"),
		MaxEngines:  c.Int("max-engines"),
		Preload:     c.Bool("preload"),

		MaxConcurrentRecognitions: c.Int64("max-concurrent-recognitions"),
		GRPCWorkers:               c.Int("grpc-workers"),
		MaxImageBytes:             c.Int("max-image-bytes"),
		MaxImagePixels:            c.Int("max-image-pixels"),
		MinConfidence:             c.Float64("min-confidence"),
		ShutdownGrace:             c.Duration("shutdown-grace"),

		Tesseract: TesseractConfig{
			TessdataPrefix: c.String("tessdata-prefix"),
			PageSegMode:    c.Int("tesseract-psm"),
		},
		Paddle: PaddleConfig{
			URL:     c.String("paddle-url"),
			API:     c.String("paddle-api"),
			Timeout: c.Duration("paddle-timeout"),
		},
		Typhoon: TyphoonConfig{
			BaseURL:   c.String("typhoon-base-url"),
			APIKey:    c.String("typhoon-api-key"),
			Model:     c.String("typhoon-model"),
			MaxTokens: c.Int("typhoon-max-tokens"),
			MaxSide:   c.Int("typhoon-max-side"),
			Timeout:   c.Duration("typhoon-timeout"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Engine {
	case EngineTesseract, EnginePaddle, EngineTyphoon:
	default:
		errs = append(errs, fmt.Errorf("unknown engine %q", c.Engine))
	}
	switch c.LogFormat {
	case LogFormatAuto, LogFormatJSON, LogFormatConsole:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.Engine == EnginePaddle && c.Paddle.API != "pipeline" && c.Paddle.API != "hub" {
		errs = append(errs, fmt.Errorf("unknown paddle api %q", c.Paddle.API))
	}
	if c.GRPCAddr == "" {
		errs = append(errs, errors.New("grpc-addr is required"))
	}
	if c.DefaultLang == "" {
		errs = append(errs, errors.New("default-lang is required"))
	}
	if c.MaxEngines < 1 {
		errs = append(errs, fmt.Errorf("max-engines must be >= 1, got %d", c.MaxEngines))
	}
	if c.MaxConcurrentRecognitions < 1 {
		errs = append(errs, fmt.Errorf("max-concurrent-recognitions must be >= 1, got %d", c.MaxConcurrentRecognitions))
	}
	if c.GRPCWorkers < 0 {
		errs = append(errs, fmt.Errorf("grpc-workers must be >= 0, got %d", c.GRPCWorkers))
	}
	if c.MaxImageBytes < 1 {
		errs = append(errs, fmt.Errorf("max-image-bytes must be positive, got %d", c.MaxImageBytes))
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		errs = append(errs, fmt.Errorf("min-confidence must be within 0..1, got %v", c.MinConfidence))
	}
	if c.ShutdownGrace < 0 {
		errs = append(errs, fmt.Errorf("shutdown-grace must not be negative, got %v", c.ShutdownGrace))
	}

	return errors.Join(errs...)
}

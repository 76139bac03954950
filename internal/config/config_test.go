package config

import (
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var (
		cfg *Config
		err error
	)
	app := &cli.App{
		Name:  "test",
		Flags: ServeFlags(),
		Action: func(c *cli.Context) error {
			cfg, err = FromCLI(c)
			return nil
		},
	}
	if runErr := app.Run(append([]string{"test"}, args...)); runErr != nil {
		t.Fatalf("app.Run() error = %v", runErr)
	}
	return cfg, err
}

func TestDefaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("FromCLI() error = %v", err)
	}
	if cfg.GRPCAddr != ":50051" {
		t.Fatalf("GRPCAddr = %q, want :50051", cfg.GRPCAddr)
	}
	if cfg.Engine != EngineTesseract || cfg.DefaultLang != "de" || cfg.MaxEngines != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Preload {
		t.Fatalf("Preload should default to true")
	}
	if cfg.ShutdownGrace != 0 {
		t.Fatalf("ShutdownGrace = %v, want immediate stop", cfg.ShutdownGrace)
	}
	if cfg.Typhoon.MaxTokens != 16000 || cfg.Paddle.API != "pipeline" {
		t.Fatalf("unexpected engine defaults: %+v %+v", cfg.Typhoon, cfg.Paddle)
	}
}

func TestFlagsAndEnv(t *testing.T) {
	t.Setenv("GRPC_ADDR", ":6000")
	t.Setenv("OCR_PADDLE_URL", "http://paddle-{lang}:8080")

	cfg, err := parse(t,
		"--engine", "paddle",
		"--paddle-api", "hub",
		"--max-engines", "3",
		"--shutdown-grace", "5s",
		"--min-confidence", "0.4",
	)
	if err != nil {
		t.Fatalf("FromCLI() error = %v", err)
	}
	if cfg.GRPCAddr != ":6000" {
		t.Fatalf("GRPCAddr = %q, want :6000 from GRPC_ADDR", cfg.GRPCAddr)
	}
	if cfg.Paddle.URL != "http://paddle-{lang}:8080" || cfg.Paddle.API != "hub" {
		t.Fatalf("Paddle = %+v", cfg.Paddle)
	}
	if cfg.MaxEngines != 3 || cfg.ShutdownGrace != 5*time.Second || cfg.MinConfidence != 0.4 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"engine", []string{"--engine", "easyocr"}, "unknown engine"},
		{"log format", []string{"--log-format", "xml"}, "unknown log format"},
		{"paddle api", []string{"--engine", "paddle", "--paddle-api", "grpc"}, "unknown paddle api"},
		{"max engines", []string{"--max-engines", "0"}, "max-engines"},
		{"semaphore", []string{"--max-concurrent-recognitions", "0"}, "max-concurrent-recognitions"},
		{"confidence", []string{"--min-confidence", "1.5"}, "min-confidence"},
		{"default lang", []string{"--default-lang", ""}, "default-lang"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("FromCLI() error = %v, want %q", err, tt.want)
			}
		})
	}
}

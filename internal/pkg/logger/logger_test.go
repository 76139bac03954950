package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Format: "json", Output: &buf})

	l.Debug().Msg("hidden")
	l.Info().Str("component", "test").Msg("hello")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (debug must be filtered): %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}
	if entry["message"] != "hello" || entry["component"] != "test" || entry["level"] != "info" {
		t.Fatalf("entry = %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("entry has no timestamp: %v", entry)
	}
}

func TestNewDebugConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Debug: true, Format: "console", Output: &buf})
	l.Debug().Msg("shown")

	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug message missing: %q", buf.String())
	}
	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Fatalf("console format should not emit json: %q", buf.String())
	}
}

func TestAutoFormatOnBufferIsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Format: "auto", Output: &buf})
	l.Info().Msg("x")
	if !json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Fatalf("auto format on a non-terminal should be json: %q", buf.String())
	}
}

func TestInterceptorLogger(t *testing.T) {
	var buf bytes.Buffer
	l := InterceptorLogger(New(Options{Format: "json", Output: &buf}))

	l.Log(context.Background(), logging.LevelWarn, "finished call", "grpc.code", "Internal", "grpc.method", "Recognize")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("unmarshal: %v (%q)", err, buf.String())
	}
	if entry["level"] != "warn" || entry["grpc.code"] != "Internal" || entry["grpc.method"] != "Recognize" {
		t.Fatalf("entry = %v", entry)
	}
}

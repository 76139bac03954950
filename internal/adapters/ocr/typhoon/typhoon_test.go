package typhoon

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/cp25sy5-modjot/ocr-service/internal/domain"
)

func newServer(t *testing.T, content string, check func(map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if check != nil {
			check(body)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "typhoon-ocr-preview",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
}

func newEngine(t *testing.T, srv *httptest.Server, lang domain.Language) *Engine {
	t.Helper()
	f, err := NewFactory(Options{BaseURL: srv.URL + "/v1", APIKey: "test", MaxSide: 64, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	e, err := f.NewEngine(context.Background(), lang)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e.(*Engine)
}

func TestRecognize(t *testing.T) {
	srv := newServer(t, "Guten Tag\nWie geht's?\n", func(body map[string]any) {
		if body["model"] != "typhoon-ocr-preview" {
			t.Errorf("model = %v", body["model"])
		}
		msgs, _ := body["messages"].([]any)
		if len(msgs) != 1 {
			t.Errorf("messages = %v", body["messages"])
			return
		}
		raw, _ := json.Marshal(msgs[0])
		if !strings.Contains(string(raw), "German") {
			t.Errorf("prompt does not name the language: %s", raw)
		}
		if !strings.Contains(string(raw), "data:image/png;base64,") {
			t.Errorf("image not sent as data url: %s", raw)
		}
	})
	defer srv.Close()

	e := newEngine(t, srv, "de")
	res, err := e.Recognize(context.Background(), image.NewNRGBA(image.Rect(0, 0, 200, 100)))
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	got, err := domain.Normalize(res, 0)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if want := []string{"Guten Tag", "Wie geht's?"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
}

func TestRecognizeEmptyReply(t *testing.T) {
	srv := newServer(t, "  ", nil)
	defer srv.Close()

	res, err := newEngine(t, srv, "en").Recognize(context.Background(), image.NewNRGBA(image.Rect(0, 0, 8, 8)))
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.Kind != domain.ResultEmpty {
		t.Fatalf("kind = %v, want empty", res.Kind)
	}
}

func TestRecognizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := newEngine(t, srv, "en").Recognize(context.Background(), image.NewNRGBA(image.Rect(0, 0, 8, 8))); err == nil {
		t.Fatalf("Recognize() expected error")
	}
}

func TestParseContentDropsFences(t *testing.T) {
	res := parseContent("```text\nline one\nline two\n```")
	if want := []string{"line one", "line two"}; !reflect.DeepEqual(res.Structured.Texts, want) {
		t.Fatalf("texts = %v, want %v", res.Structured.Texts, want)
	}
}

func TestBuildPromptUnknownLanguage(t *testing.T) {
	if p := buildPrompt("eng+deu"); !strings.Contains(p, "eng+deu") {
		t.Fatalf("prompt = %q", p)
	}
}

func TestNewFactoryRequiresBaseURL(t *testing.T) {
	if _, err := NewFactory(Options{}); err == nil {
		t.Fatalf("NewFactory() expected error")
	}
}

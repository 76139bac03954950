package paddle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/cp25sy5-modjot/ocr-service/internal/domain"
)

func blank() image.Image { return image.NewNRGBA(image.Rect(0, 0, 4, 4)) }

func engineFor(t *testing.T, url, api string, lang domain.Language) *Engine {
	t.Helper()
	f, err := NewFactory(Options{URL: url, API: api, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	e, err := f.NewEngine(context.Background(), lang)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e.(*Engine)
}

func TestPipelineRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/de/ocr" {
			t.Errorf("path = %s, want /de/ocr", r.URL.Path)
		}
		var req pipelineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.FileType != 1 {
			t.Errorf("fileType = %d, want 1", req.FileType)
		}
		if _, err := base64.StdEncoding.DecodeString(req.File); err != nil {
			t.Errorf("file is not base64: %v", err)
		}
		_, _ = w.Write([]byte(`{"logId":"x","errorCode":0,"errorMsg":"Success","result":{"ocrResults":[{"prunedResult":{"rec_texts":["Hallo","Welt"],"rec_scores":[0.98,0.91]}}]}}`))
	}))
	defer srv.Close()

	res, err := engineFor(t, srv.URL+"/{lang}/", APIPipeline, "de").Recognize(context.Background(), blank())
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.Kind != domain.ResultStructured {
		t.Fatalf("kind = %v, want structured", res.Kind)
	}
	got, err := domain.Normalize(res, 0)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if want := []string{"Hallo", "Welt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
}

func TestPipelineEmptyAndErrors(t *testing.T) {
	res, err := pipelineToResult(pipelineResponse{})
	if err != nil || res.Kind != domain.ResultEmpty {
		t.Fatalf("pipelineToResult(empty) = %v, %v", res.Kind, err)
	}
	_, err = pipelineToResult(pipelineResponse{ErrorCode: 500, ErrorMsg: "boom"})
	if !errors.Is(err, ErrServer) {
		t.Fatalf("pipelineToResult(error) = %v, want ErrServer", err)
	}
}

func TestHubRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict/ocr_system" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req hubRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Images) != 1 {
			t.Errorf("bad request: %+v, %v", req, err)
		}
		_, _ = w.Write([]byte(`{"msg":"","status":"000","results":[[
			{"text":"first","confidence":0.99,"text_region":[[10,5],[80,5],[80,20],[10,20]]},
			{"text":"second","confidence":0.42,"text_region":[[10,30],[60,30],[60,44],[10,44]]}
		]]}`))
	}))
	defer srv.Close()

	res, err := engineFor(t, srv.URL, APIHub, "en").Recognize(context.Background(), blank())
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.Kind != domain.ResultLines || len(res.Lines) != 2 {
		t.Fatalf("result = %+v", res)
	}
	if got := res.Lines[0].Box; got != image.Rect(10, 5, 80, 20) {
		t.Fatalf("box = %v", got)
	}
	got, _ := domain.Normalize(res, 0.5)
	if want := []string{"first"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
}

func TestHubStatusError(t *testing.T) {
	if _, err := hubToResult(hubResponse{Status: "101", Msg: "bad image"}); !errors.Is(err, ErrServer) {
		t.Fatalf("hubToResult() error = %v, want ErrServer", err)
	}
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := engineFor(t, srv.URL, APIPipeline, "en").Recognize(context.Background(), blank())
	if !errors.Is(err, ErrServer) {
		t.Fatalf("Recognize() error = %v, want ErrServer", err)
	}
}

func TestNewFactoryValidation(t *testing.T) {
	if _, err := NewFactory(Options{}); err == nil {
		t.Fatalf("expected error for missing url")
	}
	if _, err := NewFactory(Options{URL: "http://x", API: "grpc"}); err == nil {
		t.Fatalf("expected error for unknown api")
	}
}

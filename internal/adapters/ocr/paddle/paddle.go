// Package paddle talks to PaddleOCR model servers over HTTP.
package paddle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/cp25sy5-modjot/ocr-service/internal/domain"
	"github.com/cp25sy5-modjot/ocr-service/internal/imaging"
	"github.com/cp25sy5-modjot/ocr-service/internal/ports"
)

const (
	// APIPipeline is the PaddleX serving OCR pipeline (POST /ocr).
	APIPipeline = "pipeline"
	// APIHub is the PaddleHub ocr_system module (POST /predict/ocr_system).
	APIHub = "hub"

	langPlaceholder = "{lang}"
)

var ErrServer = errors.New("paddle server error")

type Options struct {
	// URL is the server base URL. "{lang}" is replaced with the language
	// code so each language can be routed to its own model server.
	URL     string
	API     string
	Timeout time.Duration
}

type Factory struct {
	opts   Options
	client *http.Client
}

func NewFactory(opts Options) (*Factory, error) {
	if opts.URL == "" {
		return nil, errors.New("paddle: url is required")
	}
	switch opts.API {
	case "":
		opts.API = APIPipeline
	case APIPipeline, APIHub:
	default:
		return nil, fmt.Errorf("paddle: unknown api %q", opts.API)
	}

	client := cleanhttp.DefaultPooledClient()
	client.Timeout = opts.Timeout

	return &Factory{opts: opts, client: client}, nil
}

func (f *Factory) Name() string { return "paddle" }

func (f *Factory) NewEngine(ctx context.Context, lang domain.Language) (ports.Engine, error) {
	base := strings.TrimRight(strings.ReplaceAll(f.opts.URL, langPlaceholder, lang.String()), "/")
	e := &Engine{client: f.client, lang: lang, api: f.opts.API}
	if f.opts.API == APIHub {
		e.endpoint = base + "/predict/ocr_system"
	} else {
		e.endpoint = base + "/ocr"
	}
	return e, nil
}

type Engine struct {
	client   *http.Client
	endpoint string
	api      string
	lang     domain.Language
}

func (e *Engine) Name() string              { return "paddle" }
func (e *Engine) Language() domain.Language { return e.lang }
func (e *Engine) Concurrent() bool          { return true }
func (e *Engine) Close() error              { return nil }

func (e *Engine) Recognize(ctx context.Context, img image.Image) (domain.EngineResult, error) {
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return domain.EngineResult{}, err
	}
	b64 := base64.StdEncoding.EncodeToString(data)

	if e.api == APIHub {
		var resp hubResponse
		if err := e.post(ctx, hubRequest{Images: []string{b64}}, &resp); err != nil {
			return domain.EngineResult{}, err
		}
		return hubToResult(resp)
	}

	var resp pipelineResponse
	if err := e.post(ctx, pipelineRequest{File: b64, FileType: 1}, &resp); err != nil {
		return domain.EngineResult{}, err
	}
	return pipelineToResult(resp)
}

func (e *Engine) post(ctx context.Context, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ocr-service/"+versioninfo.Short())

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("paddle request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %d - %s", ErrServer, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode paddle response: %w", err)
	}
	return nil
}

func pipelineToResult(resp pipelineResponse) (domain.EngineResult, error) {
	if resp.ErrorCode != 0 {
		return domain.EngineResult{}, fmt.Errorf("%w: code %d: %s", ErrServer, resp.ErrorCode, resp.ErrorMsg)
	}
	if resp.Result == nil || len(resp.Result.OCRResults) == 0 {
		return domain.EmptyResult(), nil
	}
	r := resp.Result.OCRResults[0].PrunedResult
	return domain.Structured(r.RecTexts, r.RecScores), nil
}

func hubToResult(resp hubResponse) (domain.EngineResult, error) {
	if resp.Status != "" && resp.Status != "000" {
		return domain.EngineResult{}, fmt.Errorf("%w: status %s: %s", ErrServer, resp.Status, resp.Msg)
	}
	if len(resp.Results) == 0 || len(resp.Results[0]) == 0 {
		return domain.EmptyResult(), nil
	}
	lines := make([]domain.LineResult, 0, len(resp.Results[0]))
	for _, l := range resp.Results[0] {
		lines = append(lines, domain.LineResult{
			Text:       l.Text,
			Confidence: l.Confidence,
			Box:        regionBounds(l.TextRegion),
		})
	}
	return domain.Lines(lines...), nil
}

func regionBounds(pts [][2]int) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: image.Pt(pts[0][0], pts[0][1]), Max: image.Pt(pts[0][0], pts[0][1])}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p[0])
		r.Min.Y = min(r.Min.Y, p[1])
		r.Max.X = max(r.Max.X, p[0])
		r.Max.Y = max(r.Max.Y, p[1])
	}
	return r
}

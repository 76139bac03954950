// Package tesseract runs OCR through libtesseract via gosseract.
package tesseract

import (
	"context"
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/cp25sy5-modjot/ocr-service/internal/domain"
	"github.com/cp25sy5-modjot/ocr-service/internal/imaging"
	"github.com/cp25sy5-modjot/ocr-service/internal/ports"
)

var ErrUnsupportedLanguage = errors.New("language is not installed")

type Options struct {
	// TessdataPrefix overrides TESSDATA_PREFIX when set.
	TessdataPrefix string
	PageSegMode    int
}

type Factory struct {
	opts Options
}

func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts}
}

func (f *Factory) Name() string { return "tesseract" }

// NewEngine configures a client for lang. The traineddata must be installed.
func (f *Factory) NewEngine(ctx context.Context, lang domain.Language) (ports.Engine, error) {
	langs := lang.Alpha3()
	if len(langs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	if err := f.checkInstalled(langs); err != nil {
		return nil, err
	}

	c := gosseract.NewClient()
	if f.opts.TessdataPrefix != "" {
		if err := c.SetTessdataPrefix(f.opts.TessdataPrefix); err != nil {
			c.Close()
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := c.SetLanguage(langs...); err != nil {
		c.Close()
		return nil, fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetPageSegMode(gosseract.PageSegMode(f.opts.PageSegMode)); err != nil {
		c.Close()
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}
	return &Engine{client: c, lang: lang}, nil
}

// checkInstalled only applies to the default data path; gosseract cannot
// list languages under a custom prefix.
func (f *Factory) checkInstalled(langs []string) error {
	if f.opts.TessdataPrefix != "" {
		return nil
	}
	available, err := gosseract.GetAvailableLanguages()
	if err != nil || len(available) == 0 {
		return nil
	}
	for _, l := range langs {
		if !slices.Contains(available, l) {
			return fmt.Errorf("%w: %s (have %s)", ErrUnsupportedLanguage, l, strings.Join(available, ", "))
		}
	}
	return nil
}

// Engine wraps one gosseract client. It is not safe for concurrent use.
type Engine struct {
	client *gosseract.Client
	lang   domain.Language
}

func (e *Engine) Name() string              { return "tesseract" }
func (e *Engine) Language() domain.Language { return e.lang }

func (e *Engine) Recognize(ctx context.Context, img image.Image) (domain.EngineResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.EngineResult{}, err
	}
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return domain.EngineResult{}, err
	}
	if err := e.client.SetImageFromBytes(data); err != nil {
		return domain.EngineResult{}, fmt.Errorf("set image: %w", err)
	}
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return domain.EngineResult{}, fmt.Errorf("recognize text lines: %w", err)
	}
	if len(boxes) == 0 {
		return domain.EmptyResult(), nil
	}

	lines := make([]domain.LineResult, 0, len(boxes))
	for _, b := range boxes {
		lines = append(lines, domain.LineResult{
			Text:       b.Word,
			Confidence: b.Confidence / 100.0,
			Box:        b.Box,
		})
	}
	return domain.Lines(lines...), nil
}

func (e *Engine) Close() error {
	return e.client.Close()
}

package usecase

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	ocrv1 "github.com/cp25sy5-modjot/ocr-service/gen/go/ocr"
	"github.com/cp25sy5-modjot/ocr-service/internal/domain"
	"github.com/cp25sy5-modjot/ocr-service/internal/imaging"
	"github.com/cp25sy5-modjot/ocr-service/internal/ports"
)

var tracer = otel.Tracer("ocr-service/usecase")

var _ ports.HealthPort = (*OCRService)(nil)

type Options struct {
	DefaultLang domain.Language
	// MaxConcurrent bounds in-flight recognitions.
	MaxConcurrent int64
	MaxPixels     int
	MinConfidence float64
}

type OCRService struct {
	ocrv1.UnimplementedOCRServiceServer
	engines ports.EnginePool
	opts    Options
	log     zerolog.Logger

	ocrSem *semaphore.Weighted // limit OCR concurrency
}

func NewOCRService(engines ports.EnginePool, opts Options, log zerolog.Logger) *OCRService {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	return &OCRService{
		engines: engines,
		opts:    opts,
		log:     log.With().Str("component", "ocr_service").Logger(),
		ocrSem:  semaphore.NewWeighted(opts.MaxConcurrent),
	}
}

// Check loads the default language engine and reports whether that worked.
func (s *OCRService) Check(ctx context.Context, name string) (bool, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = ocrv1.OCRService_ServiceDesc.ServiceName
	}
	if err := s.engines.Preload(ctx, s.opts.DefaultLang); err != nil {
		s.log.Error().Err(err).Str("lang", s.opts.DefaultLang.String()).Msg("health check failed")
		return false, fmt.Sprintf("%s: %v", name, err)
	}
	return true, "OK: " + name
}

// Recognize returns the text lines found in the request image. Every failure
// is reported as INTERNAL together with an empty text list.
func (s *OCRService) Recognize(ctx context.Context, req *ocrv1.OCRRequest) (*ocrv1.OCRResponse, error) {
	start := time.Now()
	lang := domain.ParseLanguage(req.GetLang(), s.opts.DefaultLang)

	ctx, span := tracer.Start(ctx, "Recognize")
	defer span.End()
	span.SetAttributes(
		attribute.String("lang", lang.String()),
		attribute.Int("image.bytes", len(req.GetImageData())),
	)

	lines, err := s.recognize(ctx, req.GetImageData(), lang)

	st := "ok"
	if err != nil {
		st = "error"
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	requests.WithLabelValues(st, lang.String()).Inc()
	requestHist.WithLabelValues(st).Observe(time.Since(start).Seconds())

	if err != nil {
		s.log.Error().Err(err).Str("lang", lang.String()).Int("image_bytes", len(req.GetImageData())).Msg("recognition failed")
		return &ocrv1.OCRResponse{Text: []string{}}, status.Error(codes.Internal, err.Error())
	}

	linesRecognized.Observe(float64(len(lines)))
	s.log.Debug().Str("lang", lang.String()).Int("lines", len(lines)).Dur("took", time.Since(start)).Msg("recognized")
	return &ocrv1.OCRResponse{Text: lines}, nil
}

func (s *OCRService) recognize(ctx context.Context, data []byte, lang domain.Language) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("panic during recognition: %v", r)
		}
	}()

	img, format, err := imaging.Decode(data, s.opts.MaxPixels)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	s.log.Debug().Str("format", format).Stringer("bounds", img.Bounds()).Msg("decoded image")

	res, err := s.runOCR(ctx, img, lang)
	if err != nil {
		return nil, err
	}

	lines, err = domain.Normalize(res, s.opts.MinConfidence)
	if err != nil {
		return nil, fmt.Errorf("normalize %s result: %w", res.Kind, err)
	}
	return lines, nil
}

func (s *OCRService) runOCR(ctx context.Context, img image.Image, lang domain.Language) (domain.EngineResult, error) {
	// concurrency limiter
	if err := s.ocrSem.Acquire(ctx, 1); err != nil {
		return domain.EngineResult{}, fmt.Errorf("wait for recognition slot: %w", err)
	}
	defer s.ocrSem.Release(1)

	var res domain.EngineResult
	err := s.engines.Do(ctx, lang, func(e ports.Engine) error {
		var err error
		res, err = e.Recognize(ctx, img)
		if err != nil {
			return fmt.Errorf("%s recognize (%s): %w", e.Name(), lang, err)
		}
		return nil
	})
	if err != nil {
		return domain.EngineResult{}, err
	}
	return res, nil
}

package ports

import (
	"context"
	"image"

	"github.com/cp25sy5-modjot/ocr-service/internal/domain"
)

// Engine is one OCR model instance bound to a single language.
type Engine interface {
	Name() string
	Language() domain.Language
	// Recognize runs inference on a decoded, opaque RGB image.
	Recognize(ctx context.Context, img image.Image) (domain.EngineResult, error)
	Close() error
}

// ConcurrentEngine is implemented by engines that can serve overlapping
// Recognize calls. Engines without it are used exclusively.
type ConcurrentEngine interface {
	Engine
	Concurrent() bool
}

type EngineFactory interface {
	Name() string
	NewEngine(ctx context.Context, lang domain.Language) (Engine, error)
}

// EnginePool hands out engines by language.
type EnginePool interface {
	Do(ctx context.Context, lang domain.Language, fn func(Engine) error) error
	Preload(ctx context.Context, lang domain.Language) error
}

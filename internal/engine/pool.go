// Package engine keeps the loaded OCR engines, keyed by language.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/cp25sy5-modjot/ocr-service/internal/domain"
	"github.com/cp25sy5-modjot/ocr-service/internal/ports"
)

var ErrPoolClosed = errors.New("engine pool is closed")

// Pool holds at most size engines. Engines are built outside the pool lock
// and published only once fully constructed; the least recently used engine
// is closed when a new language needs its place.
type Pool struct {
	factory ports.EngineFactory
	size    int
	log     zerolog.Logger

	mu     sync.Mutex
	slots  *lru.Cache[domain.Language, *slot]
	closed bool

	loads singleflight.Group
}

func NewPool(factory ports.EngineFactory, size int, log zerolog.Logger) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("pool size must be >= 1, got %d", size)
	}
	slots, err := lru.New[domain.Language, *slot](size)
	if err != nil {
		return nil, err
	}
	return &Pool{
		factory: factory,
		size:    size,
		log:     log.With().Str("component", "engine_pool").Logger(),
		slots:   slots,
	}, nil
}

// Do runs fn with the engine for lang, loading it first if needed. fn has
// exclusive use of the engine unless the engine declares itself concurrent.
func (p *Pool) Do(ctx context.Context, lang domain.Language, fn func(ports.Engine) error) error {
	for {
		s, err := p.acquire(ctx, lang)
		if err != nil {
			return err
		}
		ran, err := s.run(fn)
		if ran {
			return err
		}
		// evicted between lookup and use
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Preload makes sure an engine for lang is loaded.
func (p *Pool) Preload(ctx context.Context, lang domain.Language) error {
	_, err := p.acquire(ctx, lang)
	return err
}

// Loaded lists the languages with a live engine, least recently used first.
func (p *Pool) Loaded() []domain.Language {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots.Keys()
}

// Close closes every engine, waiting for in-flight work on each.
func (p *Pool) Close() error {
	p.mu.Lock()
	p.closed = true
	var slots []*slot
	for _, lang := range p.slots.Keys() {
		if s, ok := p.slots.Peek(lang); ok {
			slots = append(slots, s)
		}
	}
	p.slots.Purge()
	enginesLoaded.Set(0)
	p.mu.Unlock()

	var errs []error
	for _, s := range slots {
		if err := s.close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s engine: %w", s.lang, err))
		}
	}
	return errors.Join(errs...)
}

func (p *Pool) lookup(lang domain.Language) (*slot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPoolClosed
	}
	s, _ := p.slots.Get(lang)
	return s, nil
}

func (p *Pool) acquire(ctx context.Context, lang domain.Language) (*slot, error) {
	if s, err := p.lookup(lang); s != nil || err != nil {
		return s, err
	}

	ch := p.loads.DoChan(string(lang), func() (any, error) {
		if s, err := p.lookup(lang); s != nil || err != nil {
			return s, err
		}
		return p.load(context.WithoutCancel(ctx), lang)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*slot), nil
	}
}

func (p *Pool) load(ctx context.Context, lang domain.Language) (*slot, error) {
	name := p.factory.Name()
	log := p.log.With().Str("engine", name).Str("lang", lang.String()).Logger()

	start := time.Now()
	status := "error"
	defer func() {
		engineLoads.WithLabelValues(name, lang.String(), status).Inc()
		engineLoadHist.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	log.Info().Msg("loading engine")
	e, err := p.factory.NewEngine(ctx, lang)
	if err != nil {
		log.Error().Err(err).Msg("failed to load engine")
		return nil, fmt.Errorf("load %s engine for %q: %w", name, lang, err)
	}
	s := newSlot(lang, e)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		_ = e.Close()
		return nil, ErrPoolClosed
	}
	var evicted []*slot
	for p.slots.Len() >= p.size {
		_, old, ok := p.slots.RemoveOldest()
		if !ok {
			break
		}
		evicted = append(evicted, old)
	}
	p.slots.Add(lang, s)
	enginesLoaded.Set(float64(p.slots.Len()))
	p.mu.Unlock()

	for _, old := range evicted {
		log.Info().Str("evicted", old.lang.String()).Msg("replacing engine")
		if err := old.close(); err != nil {
			log.Warn().Err(err).Str("evicted", old.lang.String()).Msg("failed to close evicted engine")
		}
	}

	status = "ok"
	log.Info().Dur("took", time.Since(start)).Msg("engine loaded")
	return s, nil
}

type slot struct {
	lang       domain.Language
	engine     ports.Engine
	concurrent bool

	mu     sync.RWMutex
	closed bool
}

func newSlot(lang domain.Language, e ports.Engine) *slot {
	s := &slot{lang: lang, engine: e}
	if ce, ok := e.(ports.ConcurrentEngine); ok {
		s.concurrent = ce.Concurrent()
	}
	return s
}

func (s *slot) run(fn func(ports.Engine) error) (bool, error) {
	if s.concurrent {
		s.mu.RLock()
		defer s.mu.RUnlock()
	} else {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if s.closed {
		return false, nil
	}
	return true, fn(s.engine)
}

func (s *slot) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.engine.Close()
}

package ocr

import (
	"context"
	"fmt"
	"sync"

	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
)

// cacheKey identifies one engine instance: backend plus language code.
type cacheKey struct {
	kind     domain.EngineKind
	language string
}

// Cache lazily constructs and reuses engine instances keyed by backend
// and language, so a loaded model or API client serves every page of a
// run and every subsequent run of the same process. The cache is owned
// by whoever constructs it; Reset closes everything and empties it.
type Cache struct {
	mu      sync.Mutex
	engines map[cacheKey]domain.Engine
	factory func(ctx context.Context, kind domain.EngineKind, language string) (domain.Engine, error)
}

// NewCache creates an engine cache backed by the real engine
// constructors.
func NewCache() *Cache {
	return &Cache{
		engines: make(map[cacheKey]domain.Engine),
		factory: newEngine,
	}
}

// NewCacheWithFactory creates a cache with a custom engine factory.
func NewCacheWithFactory(factory func(ctx context.Context, kind domain.EngineKind, language string) (domain.Engine, error)) *Cache {
	return &Cache{
		engines: make(map[cacheKey]domain.Engine),
		factory: factory,
	}
}

// Get returns the engine for the given backend and language, creating
// it on first use. Construction failures are not cached; a later Get
// retries.
func (c *Cache) Get(ctx context.Context, kind domain.EngineKind, language string) (domain.Engine, error) {
	key := cacheKey{kind: kind, language: language}

	c.mu.Lock()
	defer c.mu.Unlock()

	if engine, ok := c.engines[key]; ok {
		return engine, nil
	}

	engine, err := c.factory(ctx, kind, language)
	if err != nil {
		return nil, err
	}
	c.engines[key] = engine
	return engine, nil
}

// Reset closes every cached engine and empties the cache.
func (c *Cache) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for key, engine := range c.engines {
		if err := engine.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.engines, key)
	}
	return firstErr
}

// newEngine constructs the real backend for an engine kind.
func newEngine(ctx context.Context, kind domain.EngineKind, language string) (domain.Engine, error) {
	switch kind {
	case domain.EngineTesseract:
		return NewTesseract(language), nil
	case domain.EngineGemini:
		return NewGemini(ctx, language)
	case domain.EngineVision:
		return NewVision()
	default:
		return nil, domain.ConfigError(fmt.Sprintf("unknown engine %q", kind), nil)
	}
}

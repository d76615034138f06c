// Package cache keeps an in-memory snapshot of the normalized catalog so
// merchandising endpoints do not hit the commerce API on every request.
// Snapshots are immutable and swapped atomically; stale reads trigger
// exactly one upstream reload through a singleflight group.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/nairamart/catalog-service/internal/catalog"
	"github.com/nairamart/catalog-service/internal/types"
)

// Snapshot view keys.
const (
	viewProducts   = "products"
	viewCategories = "categories"
)

// Source is the slice of the upstream client the cache needs.
type Source interface {
	ListProducts(ctx context.Context, q types.ProductQuery) ([]types.RawProduct, error)
	ListCategories(ctx context.Context) ([]types.Category, error)
}

// Options configures a CatalogCache.
type Options struct {
	// TTL is how long a snapshot stays fresh. Zero selects 5 minutes.
	TTL time.Duration
	// WarmupConcurrency bounds concurrent view loads during warmup.
	// Zero selects 2.
	WarmupConcurrency int64
	// LoadTimeout bounds a single snapshot load. Zero selects 30s.
	LoadTimeout time.Duration

	Logger zerolog.Logger
}

// productSnapshot pairs the raw records with their normalized forms so both
// the canonical derivers and HighestFlashEndTime (which reads raw records)
// share one upstream fetch.
type productSnapshot struct {
	raws     []types.RawProduct
	products []catalog.Product
	loadedAt time.Time
}

type categorySnapshot struct {
	categories []types.Category
	loadedAt   time.Time
}

// CatalogCache holds the current catalog snapshots.
type CatalogCache struct {
	source     Source
	normalizer *catalog.Normalizer

	ttl         time.Duration
	loadTimeout time.Duration
	warmupSem   *semaphore.Weighted
	logger      zerolog.Logger

	products   atomic.Value // *productSnapshot
	categories atomic.Value // *categorySnapshot

	sf flightGroup
}

// New creates a CatalogCache over the given source and normalizer.
func New(source Source, normalizer *catalog.Normalizer, opts Options) *CatalogCache {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.WarmupConcurrency <= 0 {
		opts.WarmupConcurrency = 2
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 30 * time.Second
	}
	return &CatalogCache{
		source:      source,
		normalizer:  normalizer,
		ttl:         opts.TTL,
		loadTimeout: opts.LoadTimeout,
		warmupSem:   semaphore.NewWeighted(opts.WarmupConcurrency),
		logger:      opts.Logger,
	}
}

// Warmup loads every view, bounded by the warmup concurrency limit. The
// first load error is returned after all loads finish.
func (c *CatalogCache) Warmup(ctx context.Context) error {
	views := []string{viewProducts, viewCategories}
	c.logger.Info().Int("views", len(views)).Msg("Starting cache warmup")

	var wg sync.WaitGroup
	errCh := make(chan error, len(views))

	for _, view := range views {
		if err := c.warmupSem.Acquire(ctx, 1); err != nil {
			return err
		}
		wg.Add(1)
		go func(view string) {
			defer c.warmupSem.Release(1)
			defer wg.Done()
			if err := c.load(view); err != nil {
				c.logger.Error().Err(err).Str("view", view).Msg("Failed to warm view")
				errCh <- err
			} else {
				c.logger.Info().Str("view", view).Msg("Warmed view")
			}
		}(view)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		return err
	}
	c.logger.Info().Msg("Cache warmup completed")
	return nil
}

// Products returns the normalized catalog, reloading a stale snapshot.
func (c *CatalogCache) Products(ctx context.Context) ([]catalog.Product, error) {
	snap, err := c.productSnap(ctx)
	if err != nil {
		return nil, err
	}
	return snap.products, nil
}

// Raw returns the raw records backing the current product snapshot.
func (c *CatalogCache) Raw(ctx context.Context) ([]types.RawProduct, error) {
	snap, err := c.productSnap(ctx)
	if err != nil {
		return nil, err
	}
	return snap.raws, nil
}

// Categories returns the category list, reloading a stale snapshot.
func (c *CatalogCache) Categories(ctx context.Context) ([]types.Category, error) {
	if snap, ok := c.categories.Load().(*categorySnapshot); ok && c.fresh(snap.loadedAt) {
		cacheHits.WithLabelValues(viewCategories).Inc()
		return snap.categories, nil
	}
	cacheMisses.WithLabelValues(viewCategories).Inc()
	if err := c.reload(ctx, viewCategories); err != nil {
		// Serve a stale snapshot over failing the request.
		if snap, ok := c.categories.Load().(*categorySnapshot); ok {
			return snap.categories, nil
		}
		return nil, err
	}
	snap := c.categories.Load().(*categorySnapshot)
	return snap.categories, nil
}

// Refresh forces a reload of the product snapshot.
func (c *CatalogCache) Refresh(ctx context.Context) error {
	return c.reload(ctx, viewProducts)
}

func (c *CatalogCache) productSnap(ctx context.Context) (*productSnapshot, error) {
	if snap, ok := c.products.Load().(*productSnapshot); ok && c.fresh(snap.loadedAt) {
		cacheHits.WithLabelValues(viewProducts).Inc()
		return snap, nil
	}
	cacheMisses.WithLabelValues(viewProducts).Inc()
	if err := c.reload(ctx, viewProducts); err != nil {
		if snap, ok := c.products.Load().(*productSnapshot); ok {
			return snap, nil
		}
		return nil, err
	}
	return c.products.Load().(*productSnapshot), nil
}

func (c *CatalogCache) fresh(loadedAt time.Time) bool {
	return time.Since(loadedAt) < c.ttl
}

// reload runs load through singleflight so concurrent stale reads share one
// upstream fetch.
func (c *CatalogCache) reload(ctx context.Context, view string) error {
	return c.sf.do(ctx, view, func() error {
		return c.load(view)
	})
}

// load fetches a view on a dedicated context so cancellation of one request
// does not fail the shared reload.
func (c *CatalogCache) load(view string) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.loadTimeout)
	defer cancel()

	start := time.Now()
	var err error
	switch view {
	case viewProducts:
		var raws []types.RawProduct
		raws, err = c.source.ListProducts(ctx, types.ProductQuery{})
		if err == nil {
			c.products.Store(&productSnapshot{
				raws:     raws,
				products: c.normalizer.NormalizeAll(raws),
				loadedAt: time.Now(),
			})
			snapshotSize.WithLabelValues(view).Set(float64(len(raws)))
		}
	case viewCategories:
		var cats []types.Category
		cats, err = c.source.ListCategories(ctx)
		if err == nil {
			c.categories.Store(&categorySnapshot{
				categories: cats,
				loadedAt:   time.Now(),
			})
			snapshotSize.WithLabelValues(view).Set(float64(len(cats)))
		}
	}

	if err != nil {
		loadErrors.WithLabelValues(view).Inc()
		return err
	}
	loadDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	return nil
}

// flightGroup prevents thundering herd on snapshot loads. A custom type
// instead of golang.org/x/sync/singleflight so the load runs on its own
// context while waiters still honor theirs.
type flightGroup struct {
	mu    sync.Mutex
	calls map[string]*flightCall
}

type flightCall struct {
	done chan struct{}
	err  error
}

func (g *flightGroup) do(ctx context.Context, key string, fn func() error) error {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flightCall)
	}
	if call, ok := g.calls[key]; ok {
		g.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	call := &flightCall{done: make(chan struct{})}
	g.calls[key] = call
	g.mu.Unlock()

	call.err = fn()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
	close(call.done)
	return call.err
}

// Package handlers exposes the catalog and merchandising views over HTTP.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nairamart/catalog-service/internal/cache"
	"github.com/nairamart/catalog-service/internal/catalog"
	"github.com/nairamart/catalog-service/internal/merch"
	"github.com/nairamart/catalog-service/internal/types"
	"github.com/nairamart/catalog-service/internal/upstream"
	"github.com/nairamart/catalog-service/internal/upstream/ratelimit"
)

// ProductFetcher is the slice of the upstream client used for by-id lookups
// that bypass the snapshot.
type ProductFetcher interface {
	GetProduct(ctx context.Context, id int) (*types.RawProduct, error)
}

// Handlers carries the dependencies every endpoint needs. Constructed once
// in main and registered on the router; no package-level state.
type Handlers struct {
	cache      *cache.CatalogCache
	fetcher    ProductFetcher
	normalizer *catalog.Normalizer
	deriver    *merch.Deriver
	logger     zerolog.Logger
}

// New creates the handler set.
func New(c *cache.CatalogCache, fetcher ProductFetcher, n *catalog.Normalizer, d *merch.Deriver, logger zerolog.Logger) *Handlers {
	return &Handlers{
		cache:      c,
		fetcher:    fetcher,
		normalizer: n,
		deriver:    d,
		logger:     logger,
	}
}

// Register mounts all versioned routes on the group.
func (h *Handlers) Register(v1 *gin.RouterGroup) {
	v1.GET("/products", h.ListProducts)
	v1.GET("/products/:id", h.GetProduct)
	v1.GET("/categories", h.ListCategories)

	m := v1.Group("/merch")
	{
		m.GET("/trending", h.Trending)
		m.GET("/new-arrivals", h.NewArrivals)
		m.GET("/flash-sales", h.FlashSales)
		m.GET("/deal-of-the-day", h.DealOfTheDay)
		m.GET("/flash-end-time", h.FlashEndTime)
	}
}

// respondError maps upstream failures to HTTP responses. The normalization
// core never errors; everything here came from the commerce API boundary.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}
	var retryErr *ratelimit.RetryError
	if errors.As(err, &retryErr) {
		h.logger.Error().Err(err).Msg("Upstream unavailable")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog temporarily unavailable"})
		return
	}
	h.logger.Error().Err(err).Msg("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nairamart/catalog-service/internal/catalog"
)

// RailResponse represents a merchandising rail.
type RailResponse struct {
	Products []catalog.Product `json:"products"`
}

// DealResponse represents the deal of the day. Deal is null when the
// catalog is empty; screens render the empty state off that.
type DealResponse struct {
	Deal *catalog.Product `json:"deal"`
}

// FlashEndTimeResponse carries the latest active flash-sale expiry.
type FlashEndTimeResponse struct {
	EndTime *time.Time `json:"endTime"`
}

// limitParam reads the optional ?limit= query, zero when absent so the
// deriver applies its default.
func limitParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// rail serves one derived product rail from the snapshot.
func (h *Handlers) rail(c *gin.Context, derive func([]catalog.Product, int) []catalog.Product) {
	products, err := h.cache.Products(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := derive(products, limitParam(c))
	if out == nil {
		out = []catalog.Product{}
	}
	c.JSON(http.StatusOK, RailResponse{Products: out})
}

// Trending returns the highest-rated products.
// GET /v1/merch/trending?limit=8
func (h *Handlers) Trending(c *gin.Context) {
	h.rail(c, h.deriver.Trending)
}

// NewArrivals returns products created within the last 7 days.
// GET /v1/merch/new-arrivals?limit=8
func (h *Handlers) NewArrivals(c *gin.Context) {
	h.rail(c, h.deriver.NewArrivals)
}

// FlashSales returns flash-sale products, soonest-expiring first.
// GET /v1/merch/flash-sales?limit=8
func (h *Handlers) FlashSales(c *gin.Context) {
	h.rail(c, h.deriver.FlashSales)
}

// DealOfTheDay returns the re-priced deal pick.
// GET /v1/merch/deal-of-the-day
func (h *Handlers) DealOfTheDay(c *gin.Context) {
	products, err := h.cache.Products(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DealResponse{Deal: h.deriver.DealOfTheDay(products)})
}

// FlashEndTime returns the latest flash_end_at among active flash records,
// read from the raw snapshot.
// GET /v1/merch/flash-end-time
func (h *Handlers) FlashEndTime(c *gin.Context) {
	raws, err := h.cache.Raw(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FlashEndTimeResponse{EndTime: h.deriver.HighestFlashEndTime(raws)})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nairamart/catalog-service/internal/catalog"
	"github.com/nairamart/catalog-service/internal/merch"
)

// ListProductsRequest represents query parameters for the product list.
type ListProductsRequest struct {
	Type       string  `form:"type"`
	CategoryID int     `form:"category_id" binding:"min=0"`
	Search     string  `form:"search"`
	MinPrice   float64 `form:"min_price" binding:"min=0"`
	MaxPrice   float64 `form:"max_price" binding:"min=0"`
	Limit      int     `form:"limit" binding:"min=0,max=500"`
}

// ListProductsResponse represents the product list response.
type ListProductsResponse struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
}

// ListProducts returns normalized products from the current snapshot,
// filtered locally by tag, category, price range, and search query.
// GET /v1/products?type=flash&search=shoe&limit=50
func (h *Handlers) ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := h.cache.Products(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	if req.Type != "" {
		products = h.deriver.ProductsByType(products, req.Type, len(products))
	}
	if req.CategoryID > 0 {
		var filtered []catalog.Product
		for _, p := range products {
			if p.CategoryID == req.CategoryID {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	if req.MinPrice > 0 || req.MaxPrice > 0 {
		var filtered []catalog.Product
		for _, p := range products {
			if req.MinPrice > 0 && p.LocalPrice < req.MinPrice {
				continue
			}
			if req.MaxPrice > 0 && p.LocalPrice > req.MaxPrice {
				continue
			}
			filtered = append(filtered, p)
		}
		products = filtered
	}
	if req.Search != "" {
		products = merch.Search(products, req.Search)
	}

	total := len(products)
	if req.Limit > 0 && len(products) > req.Limit {
		products = products[:req.Limit]
	}
	if products == nil {
		products = []catalog.Product{}
	}

	c.JSON(http.StatusOK, ListProductsResponse{Products: products, Total: total})
}

// GetProduct returns one normalized product fetched fresh from the backend.
// GET /v1/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	raw, err := h.fetcher.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.normalizer.Normalize(*raw))
}

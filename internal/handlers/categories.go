package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nairamart/catalog-service/internal/types"
)

// CategoriesResponse represents the category list response.
type CategoriesResponse struct {
	Categories []types.Category `json:"categories"`
}

// ListCategories returns active product categories.
// GET /v1/categories
func (h *Handlers) ListCategories(c *gin.Context) {
	cats, err := h.cache.Categories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if cats == nil {
		cats = []types.Category{}
	}
	c.JSON(http.StatusOK, CategoriesResponse{Categories: cats})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Catalog string `json:"catalog"`
}

// HealthCheck reports service health and whether a catalog snapshot is
// available.
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{Status: "ok", Catalog: "warm"}
	if _, err := h.cache.Products(c.Request.Context()); err != nil {
		response.Catalog = "unavailable"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

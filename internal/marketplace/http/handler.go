package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/marketplace"
)

type MarketplaceHandler struct {
	marketplaceService marketplace.Service
}

func NewHandler(marketplaceService marketplace.Service) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceService: marketplaceService}
}

// Discover returns the authenticated user's tenants with their active
// services and proposed next slots.
func (h *MarketplaceHandler) Discover(c *gin.Context) {
	listings, err := h.marketplaceService.Discover(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build discovery view"})
		return
	}

	c.JSON(http.StatusOK, NewDiscoverResponse(listings))
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers marketplace discovery routes.
func RegisterRoutes(g *gin.RouterGroup, h *MarketplaceHandler, authMiddleware gin.HandlerFunc) {
	g.GET("/marketplace/discover", authMiddleware, h.Discover)
}

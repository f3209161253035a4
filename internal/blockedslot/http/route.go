package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers blocked slot routes.
func RegisterRoutes(g *gin.RouterGroup, h *BlockedSlotHandler, authMiddleware gin.HandlerFunc) {
	blocksGroup := g.Group("/blocked-slots")
	blocksGroup.Use(authMiddleware)
	{
		blocksGroup.GET("", h.List)
		blocksGroup.POST("", h.Create)
		blocksGroup.DELETE("/:id", h.Delete)
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers media routes. Content is readable without auth so
// the marketplace pages can embed the images directly.
func RegisterRoutes(g *gin.RouterGroup, h *MediaHandler, authMiddleware gin.HandlerFunc) {
	mediaGroup := g.Group("/media")
	{
		mediaGroup.GET("/:id/content", h.Content)

		mediaGroup.GET("", authMiddleware, h.List)
		mediaGroup.POST("", authMiddleware, h.Upload)
		mediaGroup.DELETE("/:id", authMiddleware, h.Delete)
	}
}

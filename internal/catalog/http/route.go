package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers service catalog routes. Reads are open to any
// authenticated user; writes are checked against the owning tenant in the
// handlers.
func RegisterRoutes(g *gin.RouterGroup, h *ServiceHandler, authMiddleware gin.HandlerFunc) {
	servicesGroup := g.Group("/services")
	servicesGroup.Use(authMiddleware)
	{
		servicesGroup.GET("", h.List)
		servicesGroup.GET("/:id", h.Get)
		servicesGroup.POST("", h.Create)
		servicesGroup.PATCH("/:id", h.Update)
		servicesGroup.DELETE("/:id", h.Delete)
	}
}

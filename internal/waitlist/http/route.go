package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers waitlist and offer routes.
func RegisterRoutes(g *gin.RouterGroup, h *WaitlistHandler, authMiddleware gin.HandlerFunc) {
	waitlistGroup := g.Group("/waitlist")
	waitlistGroup.Use(authMiddleware)
	{
		waitlistGroup.POST("/entries", h.Join)
		waitlistGroup.GET("/entries", h.ListEntries)
		waitlistGroup.DELETE("/entries/:id", h.Leave)

		waitlistGroup.GET("/offers/:id", h.GetOffer)
		waitlistGroup.POST("/offers/:id/accept", h.AcceptOffer)
		waitlistGroup.POST("/offers/:id/reject", h.RejectOffer)
	}
}

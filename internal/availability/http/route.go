package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers availability routes. The agenda is member-only;
// marketplace slot grids are public so anonymous visitors can browse.
func RegisterRoutes(g *gin.RouterGroup, h *AvailabilityHandler, authMiddleware gin.HandlerFunc) {
	g.GET("/tenants/:id/agenda", authMiddleware, h.Agenda)
	g.GET("/marketplace/services/:id/slots", h.ServiceSlots)
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers appointment routes.
func RegisterRoutes(g *gin.RouterGroup, h *AppointmentHandler, authMiddleware gin.HandlerFunc) {
	appointmentsGroup := g.Group("/appointments")
	appointmentsGroup.Use(authMiddleware)
	{
		appointmentsGroup.POST("", h.Create)
		appointmentsGroup.GET("", h.List)
		appointmentsGroup.GET("/:id", h.Get)
		appointmentsGroup.POST("/:id/confirm", h.Confirm)
		appointmentsGroup.POST("/:id/cancel", h.Cancel)
		appointmentsGroup.POST("/:id/no-show", h.MarkNoShow)
		appointmentsGroup.PATCH("/:id/notes", h.UpdateNotes)
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers notification queue routes.
func RegisterRoutes(g *gin.RouterGroup, h *NotificationHandler, authMiddleware gin.HandlerFunc) {
	notificationsGroup := g.Group("/notifications")
	notificationsGroup.Use(authMiddleware)
	{
		notificationsGroup.GET("", h.List)
		notificationsGroup.POST("/reminders", h.QueueReminder)
		notificationsGroup.POST("/:id/sent", h.MarkSent)
		notificationsGroup.POST("/:id/failed", h.MarkFailed)
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers tenant and membership routes. Per-tenant permission
// checks happen inside the handlers since they depend on the caller's role in
// the addressed tenant.
func RegisterRoutes(g *gin.RouterGroup, h *TenantHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	tenantsGroup := g.Group("/tenants")
	tenantsGroup.Use(authMiddleware)
	{
		tenantsGroup.POST("", h.Create)
		tenantsGroup.GET("/:id", h.Get)
		tenantsGroup.PATCH("/:id", h.Update)

		tenantsGroup.GET("/:id/members", h.ListMembers)
		tenantsGroup.POST("/:id/members", h.AddMember)
		tenantsGroup.PATCH("/:id/members/:userID", h.UpdateMember)
		tenantsGroup.DELETE("/:id/members/:userID", h.RemoveMember)
	}

	// Admin Routes
	adminGroup := g.Group("/tenants")
	adminGroup.Use(authMiddleware, adminMiddleware)
	{
		adminGroup.GET("", h.List)
		adminGroup.DELETE("/:id", h.Delete)
	}
}

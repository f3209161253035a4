package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	"github.com/nilahq/scheduling-backend/internal/pkg/response"
	"github.com/nilahq/scheduling-backend/internal/tenant"
)

type TenantHandler struct {
	tenantService tenant.Service
}

func NewHandler(tenantService tenant.Service) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// requireManager aborts with 403 unless the caller manages the tenant
// (active owner/admin member, or system admin).
func (h *TenantHandler) requireManager(c *gin.Context, tenantID string) bool {
	userID := auth.GetUserID(c)
	ok, err := h.tenantService.IsManagerOrAbove(c.Request.Context(), tenantID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return false
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return false
	}
	return true
}

// List retrieves a paginated list of tenants with optional filtering.
// Access Control: System Admin only.
func (h *TenantHandler) List(c *gin.Context) {
	var req ListTenantsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	req.Normalize()

	filter := tenant.Filter{
		Keyword:  req.Keyword,
		IsActive: req.IsActive,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	tenants, total, err := h.tenantService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tenants"})
		return
	}

	items := make([]TenantResponse, len(tenants))
	for i, t := range tenants {
		items[i] = NewTenantResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a specific tenant. Any active member can read it.
func (h *TenantHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	member, err := h.tenantService.IsActiveMember(c.Request.Context(), req.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return
	}
	if !member {
		if ok := h.requireManager(c, req.ID); !ok {
			return
		}
	}

	t, err := h.tenantService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get tenant"})
		}
		return
	}

	c.JSON(http.StatusOK, NewTenantResponse(t))
}

// Create registers a new tenant. The caller becomes its owner member.
func (h *TenantHandler) Create(c *gin.Context) {
	var body CreateTenantRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	t, err := h.tenantService.Create(c.Request.Context(), tenant.CreateRequest{
		Name:              body.Name,
		EstablishmentType: body.EstablishmentType,
		RevenueModel:      body.RevenueModel,
		OpeningHours:      body.OpeningHours,
		Courts:            body.Courts,
		OwnerUserID:       auth.GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrNameRequired),
			errors.Is(err, tenant.ErrInvalidType),
			errors.Is(err, tenant.ErrInvalidRevenue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, tenant.ErrSlugTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "a tenant with a similar name already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tenant"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewTenantResponse(t))
}

// Update modifies tenant attributes, including opening hours in either the raw
// string form or the structured schedule form.
// Access Control: tenant manager.
func (h *TenantHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, uri.ID); !ok {
		return
	}

	var body UpdateTenantRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := tenant.UpdateRequest{
		Name:              body.Name,
		EstablishmentType: body.EstablishmentType,
		RevenueModel:      body.RevenueModel,
		OpeningHours:      body.OpeningHours,
		Courts:            body.Courts,
		IsActive:          body.IsActive,
	}
	if body.Schedule != nil {
		req.Schedule = body.Schedule.toDomain()
	}

	t, err := h.tenantService.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		case errors.Is(err, tenant.ErrNameRequired),
			errors.Is(err, tenant.ErrInvalidType),
			errors.Is(err, tenant.ErrInvalidRevenue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update tenant"})
		}
		return
	}

	c.JSON(http.StatusOK, NewTenantResponse(t))
}

// Delete removes a tenant and all dependent rows.
// Access Control: System Admin only.
func (h *TenantHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, tenant.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete tenant"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMembers retrieves the member roster of a tenant.
// Access Control: tenant manager.
func (h *TenantHandler) ListMembers(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, uri.ID); !ok {
		return
	}

	var req ListMembersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	req.Normalize()

	members, total, err := h.tenantService.ListMembers(c.Request.Context(), uri.ID, tenant.MemberFilter{
		Role:     req.Role,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}

	items := make([]MemberResponse, len(members))
	for i, m := range members {
		items[i] = NewMemberResponse(m)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// AddMember adds a user to the tenant with a role.
// Access Control: tenant manager.
func (h *TenantHandler) AddMember(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, uri.ID); !ok {
		return
	}

	var body AddMemberRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	err := h.tenantService.AddMember(c.Request.Context(), uri.ID, tenant.AddMemberRequest{
		UserID: body.UserID,
		Role:   body.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		case errors.Is(err, tenant.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, tenant.ErrUserAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": "user is already a member"})
		case errors.Is(err, tenant.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add member"})
		}
		return
	}

	c.Status(http.StatusCreated)
}

// UpdateMember changes a member's role.
// Access Control: tenant manager.
func (h *TenantHandler) UpdateMember(c *gin.Context) {
	var uri memberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, uri.ID); !ok {
		return
	}

	var body UpdateMemberRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	err := h.tenantService.UpdateMemberRole(c.Request.Context(), uri.ID, uri.UserID, body.Role)
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrUserNotMember):
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		case errors.Is(err, tenant.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update member"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveMember removes a user from the tenant roster.
// Access Control: tenant manager.
func (h *TenantHandler) RemoveMember(c *gin.Context) {
	var uri memberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, uri.ID); !ok {
		return
	}

	err := h.tenantService.RemoveMember(c.Request.Context(), uri.ID, uri.UserID)
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrUserNotMember):
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove member"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

type memberURI struct {
	ID     string `uri:"id" binding:"required,uuid"`
	UserID string `uri:"userID" binding:"required,uuid"`
}

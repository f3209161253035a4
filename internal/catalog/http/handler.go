package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/catalog"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	"github.com/nilahq/scheduling-backend/internal/pkg/response"
	"github.com/nilahq/scheduling-backend/internal/tenant"
)

type ServiceHandler struct {
	catalogManager catalog.Manager
	tenantService  tenant.Service
}

func NewHandler(catalogManager catalog.Manager, tenantService tenant.Service) *ServiceHandler {
	return &ServiceHandler{catalogManager: catalogManager, tenantService: tenantService}
}

func (h *ServiceHandler) requireManager(c *gin.Context, tenantID string) bool {
	ok, err := h.tenantService.IsManagerOrAbove(c.Request.Context(), tenantID, auth.GetUserID(c))
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

// List retrieves a paginated list of services, typically scoped to a tenant.
func (h *ServiceHandler) List(c *gin.Context) {
	var req ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	req.Normalize()

	services, total, err := h.catalogManager.List(c.Request.Context(), catalog.Filter{
		TenantID:   req.TenantID,
		Discipline: req.Discipline,
		Keyword:    req.Keyword,
		IsActive:   req.IsActive,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list services"})
		return
	}

	items := make([]ServiceResponse, len(services))
	for i, s := range services {
		items[i] = NewServiceResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a single service.
func (h *ServiceHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	s, err := h.catalogManager.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get service"})
		}
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(s))
}

// Create adds a service to a tenant's catalog.
// Access Control: tenant manager.
func (h *ServiceHandler) Create(c *gin.Context) {
	var body CreateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, body.TenantID); !ok {
		return
	}

	req := catalog.CreateRequest{
		TenantID:    body.TenantID,
		Name:        body.Name,
		Discipline:  body.Discipline,
		Description: body.Description,
		PriceCents:  body.PriceCents,
		DurationMin: body.DurationMin,
		IsOnline:    body.IsOnline,
	}
	if body.Config != nil {
		req.Config = body.Config.toDomain()
	}

	s, err := h.catalogManager.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		case errors.Is(err, catalog.ErrNameRequired),
			errors.Is(err, catalog.ErrInvalidDuration),
			errors.Is(err, catalog.ErrInvalidPrice),
			errors.Is(err, catalog.ErrInvalidMode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create service"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewServiceResponse(s))
}

// Update modifies a service.
// Access Control: tenant manager.
func (h *ServiceHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	existing, err := h.catalogManager.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get service"})
		}
		return
	}

	if ok := h.requireManager(c, existing.TenantID); !ok {
		return
	}

	var body UpdateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := catalog.UpdateRequest{
		Name:        body.Name,
		Discipline:  body.Discipline,
		Description: body.Description,
		PriceCents:  body.PriceCents,
		DurationMin: body.DurationMin,
		IsOnline:    body.IsOnline,
		IsActive:    body.IsActive,
	}
	if body.Config != nil {
		cfg := body.Config.toDomain()
		req.Config = &cfg
	}

	s, err := h.catalogManager.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		case errors.Is(err, catalog.ErrNameRequired),
			errors.Is(err, catalog.ErrInvalidDuration),
			errors.Is(err, catalog.ErrInvalidPrice),
			errors.Is(err, catalog.ErrInvalidMode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update service"})
		}
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(s))
}

// Delete removes a service from the catalog.
// Access Control: tenant manager.
func (h *ServiceHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	existing, err := h.catalogManager.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get service"})
		}
		return
	}

	if ok := h.requireManager(c, existing.TenantID); !ok {
		return
	}

	if err := h.catalogManager.Delete(c.Request.Context(), uri.ID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete service"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

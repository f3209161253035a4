package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/availability"
	"github.com/nilahq/scheduling-backend/internal/catalog"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	"github.com/nilahq/scheduling-backend/internal/tenant"
)

type AvailabilityHandler struct {
	availabilityService availability.Service
	tenantService       tenant.Service
}

func NewHandler(availabilityService availability.Service, tenantService tenant.Service) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService, tenantService: tenantService}
}

func bindDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	}
	day, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

// Agenda returns the per-court day view of a tenant.
// Access Control: active tenant member.
func (h *AvailabilityHandler) Agenda(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	day, ok := bindDate(c)
	if !ok {
		return
	}

	userID := auth.GetUserID(c)
	member, err := h.tenantService.IsActiveMember(c.Request.Context(), uri.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return
	}
	if !member {
		manager, err := h.tenantService.IsManagerOrAbove(c.Request.Context(), uri.ID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
			return
		}
		if !manager {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
	}

	courts, err := h.availabilityService.Agenda(c.Request.Context(), uri.ID, day)
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build agenda"})
		}
		return
	}

	resp := AgendaResponse{
		TenantID: uri.ID,
		Date:     day.Format(dateLayout),
		Courts:   make(map[string][]EntryDTO, len(courts)),
	}
	for court, entries := range courts {
		dtos := make([]EntryDTO, len(entries))
		for i, e := range entries {
			dtos[i] = newEntryDTO(e)
		}
		resp.Courts[court] = dtos
	}

	c.JSON(http.StatusOK, resp)
}

// ServiceSlots returns the classified slot grid for a marketplace service.
func (h *AvailabilityHandler) ServiceSlots(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	day, ok := bindDate(c)
	if !ok {
		return
	}

	slots, err := h.availabilityService.ServiceSlots(c.Request.Context(), uri.ID, day)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build slots"})
		}
		return
	}

	c.JSON(http.StatusOK, NewSlotsResponse(uri.ID, day.Format(dateLayout), slots))
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/booking"
	bookingHttp "github.com/nilahq/scheduling-backend/internal/booking/http"
	"github.com/nilahq/scheduling-backend/internal/catalog"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	"github.com/nilahq/scheduling-backend/internal/pkg/response"
	"github.com/nilahq/scheduling-backend/internal/tenant"
	"github.com/nilahq/scheduling-backend/internal/waitlist"
)

type WaitlistHandler struct {
	waitlistService waitlist.Service
	tenantService   tenant.Service
}

func NewHandler(waitlistService waitlist.Service, tenantService tenant.Service) *WaitlistHandler {
	return &WaitlistHandler{waitlistService: waitlistService, tenantService: tenantService}
}

// Join puts the authenticated user on a service waitlist.
func (h *WaitlistHandler) Join(c *gin.Context) {
	var body JoinRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	e, err := h.waitlistService.Join(c.Request.Context(), body.TenantID, body.ServiceID, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		case errors.Is(err, waitlist.ErrAlreadyQueued):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join waitlist"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewEntryResponse(e))
}

// Leave removes the authenticated user's waitlist entry.
func (h *WaitlistHandler) Leave(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.waitlistService.Leave(c.Request.Context(), uri.ID, auth.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "waitlist entry not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to leave waitlist"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListEntries lists waitlist entries. Clients see their own; tenant managers
// can inspect a whole tenant via tenant_id.
func (h *WaitlistHandler) ListEntries(c *gin.Context) {
	var req ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	req.Normalize()

	filter := waitlist.EntryFilter{
		TenantID:  req.TenantID,
		ServiceID: req.ServiceID,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	userID := auth.GetUserID(c)
	if req.Mine || req.TenantID == "" {
		filter.UserID = userID
	} else {
		manager, err := h.tenantService.IsManagerOrAbove(c.Request.Context(), req.TenantID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
			return
		}
		if !manager {
			filter.UserID = userID
		}
	}

	entries, total, err := h.waitlistService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list waitlist entries"})
		return
	}

	items := make([]EntryResponse, len(entries))
	for i, e := range entries {
		items[i] = NewEntryResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// GetOffer retrieves an offer addressed to the authenticated user.
func (h *WaitlistHandler) GetOffer(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	o, err := h.waitlistService.GetOffer(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrOfferNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get offer"})
		}
		return
	}

	c.JSON(http.StatusOK, NewOfferResponse(o))
}

// AcceptOffer books the offered slot as a requested appointment.
func (h *WaitlistHandler) AcceptOffer(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	appt, err := h.waitlistService.AcceptOffer(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrOfferNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		case errors.Is(err, waitlist.ErrNotOfferee):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, waitlist.ErrNotPending),
			errors.Is(err, waitlist.ErrOfferExpired):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrCourtUnavailable),
			errors.Is(err, booking.ErrNoCourtAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": "slot is no longer available"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept offer"})
		}
		return
	}

	c.JSON(http.StatusCreated, bookingHttp.NewAppointmentResponse(appt))
}

// RejectOffer declines the offer; the slot moves on to the next entry.
func (h *WaitlistHandler) RejectOffer(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.waitlistService.RejectOffer(c.Request.Context(), uri.ID, auth.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, waitlist.ErrOfferNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		case errors.Is(err, waitlist.ErrNotOfferee):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, waitlist.ErrNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reject offer"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

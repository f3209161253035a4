package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/booking"
	"github.com/nilahq/scheduling-backend/internal/catalog"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	"github.com/nilahq/scheduling-backend/internal/pkg/response"
	"github.com/nilahq/scheduling-backend/internal/tenant"
)

type AppointmentHandler struct {
	bookingService booking.Service
	tenantService  tenant.Service
}

func NewHandler(bookingService booking.Service, tenantService tenant.Service) *AppointmentHandler {
	return &AppointmentHandler{bookingService: bookingService, tenantService: tenantService}
}

func (h *AppointmentHandler) isManager(c *gin.Context, tenantID string) (bool, bool) {
	ok, err := h.tenantService.IsManagerOrAbove(c.Request.Context(), tenantID, auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return false, false
	}
	return ok, true
}

// Create books an appointment for the authenticated user. The court, when not
// requested explicitly, is assigned automatically.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var body CreateAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	a, err := h.bookingService.Create(c.Request.Context(), booking.CreateRequest{
		ServiceID:    body.ServiceID,
		ClientUserID: auth.GetUserID(c),
		CourtName:    body.CourtName,
		StartTime:    body.StartTime,
		Notes:        body.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		case errors.Is(err, booking.ErrInvalidRange),
			errors.Is(err, booking.ErrStartInPast),
			errors.Is(err, booking.ErrTooSoon),
			errors.Is(err, booking.ErrServiceInactive),
			errors.Is(err, booking.ErrCourtNotIncluded):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrCourtUnavailable),
			errors.Is(err, booking.ErrNoCourtAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appointment"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewAppointmentResponse(a))
}

// List retrieves appointments. Clients see their own; tenant managers can list
// the whole tenant agenda via tenant_id.
func (h *AppointmentHandler) List(c *gin.Context) {
	var req ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	req.Normalize()

	filter := booking.Filter{
		TenantID:  req.TenantID,
		ServiceID: req.ServiceID,
		CourtName: req.CourtName,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if req.From != nil {
		filter.From = *req.From
	}
	if req.To != nil {
		filter.To = *req.To
	}

	if req.Mine || req.TenantID == "" {
		filter.ClientUserID = auth.GetUserID(c)
	} else {
		manager, ok := h.isManager(c, req.TenantID)
		if !ok {
			return
		}
		if !manager {
			filter.ClientUserID = auth.GetUserID(c)
		}
	}

	appointments, total, err := h.bookingService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}

	items := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		items[i] = NewAppointmentResponse(a)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a single appointment. Owner or tenant manager.
func (h *AppointmentHandler) Get(c *gin.Context) {
	a, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewAppointmentResponse(a))
}

// Confirm transitions a requested appointment to confirmed.
// Access Control: tenant manager.
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.bookingService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.writeGetError(c, err)
		return
	}

	manager, ok := h.isManager(c, a.TenantID)
	if !ok {
		return
	}
	if !manager {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	if err := h.bookingService.Confirm(c.Request.Context(), uri.ID); err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		case errors.Is(err, booking.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm appointment"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Cancel cancels an appointment. The booking client is bound by the service's
// cancellation window; tenant managers are not.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.bookingService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.writeGetError(c, err)
		return
	}

	userID := auth.GetUserID(c)
	manager, ok := h.isManager(c, a.TenantID)
	if !ok {
		return
	}
	if !manager && a.ClientUserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	err = h.bookingService.Cancel(c.Request.Context(), uri.ID, booking.Actor{
		UserID:    userID,
		IsManager: manager,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		case errors.Is(err, booking.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrTooLateToCancel):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel appointment"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkNoShow flags a confirmed appointment whose client did not show up.
// Access Control: tenant manager.
func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.bookingService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.writeGetError(c, err)
		return
	}

	manager, ok := h.isManager(c, a.TenantID)
	if !ok {
		return
	}
	if !manager {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	if err := h.bookingService.MarkNoShow(c.Request.Context(), uri.ID); err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark no-show"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateNotes replaces the appointment notes. Owner or tenant manager.
func (h *AppointmentHandler) UpdateNotes(c *gin.Context) {
	a, ok := h.loadAuthorized(c)
	if !ok {
		return
	}

	var body UpdateNotesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.bookingService.UpdateNotes(c.Request.Context(), a.ID, body.Notes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notes"})
		return
	}

	c.Status(http.StatusNoContent)
}

// loadAuthorized binds the :id parameter, loads the appointment and checks the
// caller is its client or a tenant manager.
func (h *AppointmentHandler) loadAuthorized(c *gin.Context) (*booking.Appointment, bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return nil, false
	}

	a, err := h.bookingService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.writeGetError(c, err)
		return nil, false
	}

	userID := auth.GetUserID(c)
	if a.ClientUserID == userID {
		return a, true
	}
	manager, ok := h.isManager(c, a.TenantID)
	if !ok {
		return nil, false
	}
	if !manager {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return nil, false
	}
	return a, true
}

func (h *AppointmentHandler) writeGetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get appointment"})
	}
}

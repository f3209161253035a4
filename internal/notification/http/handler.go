package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/notification"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	"github.com/nilahq/scheduling-backend/internal/pkg/response"
	"github.com/nilahq/scheduling-backend/internal/tenant"
)

type NotificationHandler struct {
	notificationService notification.Service
	tenantService       tenant.Service
}

func NewHandler(notificationService notification.Service, tenantService tenant.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, tenantService: tenantService}
}

func (h *NotificationHandler) requireManager(c *gin.Context, tenantID string) bool {
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

// List retrieves queued and delivered notifications of a tenant.
// Access Control: tenant manager.
func (h *NotificationHandler) List(c *gin.Context) {
	var req ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, req.TenantID); !ok {
		return
	}

	req.Normalize()

	notifications, total, err := h.notificationService.List(c.Request.Context(), notification.Filter{
		TenantID: req.TenantID,
		Channel:  req.Channel,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	items := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = NewNotificationResponse(n)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// QueueReminder enqueues a manual reminder message.
// Access Control: tenant manager.
func (h *NotificationHandler) QueueReminder(c *gin.Context) {
	var body QueueReminderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, body.TenantID); !ok {
		return
	}

	n, err := h.notificationService.Queue(c.Request.Context(), notification.QueueRequest{
		TenantID:    body.TenantID,
		Channel:     body.Channel,
		ToAddress:   body.ToAddress,
		Payload:     body.Payload,
		ScheduledAt: body.ScheduledAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrInvalidChannel),
			errors.Is(err, notification.ErrAddressRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue notification"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewNotificationResponse(n))
}

// MarkSent transitions a queued notification to sent. Called by the delivery
// worker after a successful handoff.
// Access Control: tenant manager.
func (h *NotificationHandler) MarkSent(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	n, err := h.notificationService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get notification"})
		}
		return
	}

	if ok := h.requireManager(c, n.TenantID); !ok {
		return
	}

	if err := h.notificationService.MarkSent(c.Request.Context(), uri.ID); err != nil {
		switch {
		case errors.Is(err, notification.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		case errors.Is(err, notification.ErrAlreadySent):
			c.JSON(http.StatusConflict, gin.H{"error": "notification already sent"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification sent"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkFailed records a delivery failure.
// Access Control: tenant manager.
func (h *NotificationHandler) MarkFailed(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body MarkFailedRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	n, err := h.notificationService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get notification"})
		}
		return
	}

	if ok := h.requireManager(c, n.TenantID); !ok {
		return
	}

	if err := h.notificationService.MarkFailed(c.Request.Context(), uri.ID, body.Reason); err != nil {
		switch {
		case errors.Is(err, notification.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification failed"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

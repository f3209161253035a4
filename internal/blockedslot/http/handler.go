package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/blockedslot"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	"github.com/nilahq/scheduling-backend/internal/pkg/response"
	"github.com/nilahq/scheduling-backend/internal/tenant"
)

type BlockedSlotHandler struct {
	blockService  blockedslot.Service
	tenantService tenant.Service
}

func NewHandler(blockService blockedslot.Service, tenantService tenant.Service) *BlockedSlotHandler {
	return &BlockedSlotHandler{blockService: blockService, tenantService: tenantService}
}

func (h *BlockedSlotHandler) requireManager(c *gin.Context, tenantID string) bool {
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

// List retrieves blocks of a tenant, optionally windowed by time.
// Access Control: tenant manager.
func (h *BlockedSlotHandler) List(c *gin.Context) {
	var req ListBlockedSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, req.TenantID); !ok {
		return
	}

	req.Normalize()

	filter := blockedslot.Filter{
		TenantID:  req.TenantID,
		CourtName: req.CourtName,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if req.From != nil {
		filter.From = *req.From
	}
	if req.To != nil {
		filter.To = *req.To
	}

	blocks, total, err := h.blockService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list blocked slots"})
		return
	}

	items := make([]BlockedSlotResponse, len(blocks))
	for i, b := range blocks {
		items[i] = NewBlockedSlotResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Create adds a block. An empty court_name blocks the whole venue.
// Access Control: tenant manager.
func (h *BlockedSlotHandler) Create(c *gin.Context) {
	var body CreateBlockedSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, body.TenantID); !ok {
		return
	}

	b, err := h.blockService.Create(c.Request.Context(), blockedslot.CreateRequest{
		TenantID:  body.TenantID,
		CourtName: body.CourtName,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Reason:    body.Reason,
		CreatedBy: auth.GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		case errors.Is(err, blockedslot.ErrInvalidRange),
			errors.Is(err, blockedslot.ErrUnknownCourt):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create blocked slot"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewBlockedSlotResponse(b))
}

// Delete removes a block.
// Access Control: tenant manager.
func (h *BlockedSlotHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.blockService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, blockedslot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "blocked slot not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get blocked slot"})
		}
		return
	}

	if ok := h.requireManager(c, b.TenantID); !ok {
		return
	}

	if err := h.blockService.Delete(c.Request.Context(), uri.ID); err != nil {
		switch {
		case errors.Is(err, blockedslot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "blocked slot not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete blocked slot"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

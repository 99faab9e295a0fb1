package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rento-service/internal/middleware"
	"rento-service/internal/services"
)

// NoticeHandler handles manager-to-tenant message endpoints
type NoticeHandler struct {
	noticeService *services.NoticeService
}

// NewNoticeHandler creates a new notice handler
func NewNoticeHandler(noticeService *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// PostNoticeRequest is the notice payload. TenantID nil means the
// message is a broadcast visible to every tenant.
type PostNoticeRequest struct {
	TenantID *uuid.UUID `json:"tenant_id"`
	Title    string     `json:"title"`
	Content  string     `json:"content" binding:"required"`
}

// PostMessage publishes a direct or broadcast notice
func (h *NoticeHandler) PostMessage(c *gin.Context) {
	var req PostNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	message, err := h.noticeService.PostMessage(c.Request.Context(), services.PostNoticeInput{
		SenderID: middleware.GetUserID(c),
		TenantID: req.TenantID,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Message posted", message)
}

// ListRecent returns the most recent messages across all tenants
func (h *NoticeHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	messages, err := h.noticeService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Messages retrieved", messages)
}

// VisibleNotices returns the notices visible to the authenticated
// tenant: broadcasts plus messages addressed to them, newest first
func (h *NoticeHandler) VisibleNotices(c *gin.Context) {
	tenantID := middleware.GetUserID(c)

	notices, err := h.noticeService.VisibleNotices(c.Request.Context(), tenantID)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Notices retrieved", notices)
}

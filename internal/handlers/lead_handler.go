package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rento-service/internal/metrics"
	"rento-service/internal/middleware"
	"rento-service/internal/models"
	"rento-service/internal/services"
)

// LeadHandler handles lead and lead message endpoints
type LeadHandler struct {
	leadService *services.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// CreateLeadRequest is the lead creation payload
type CreateLeadRequest struct {
	TenantName   string  `json:"tenant_name" binding:"required"`
	TenantEmail  string  `json:"tenant_email" binding:"required,email"`
	TenantPhone  *string `json:"tenant_phone"`
	PropertyType string  `json:"property_type" binding:"required"`
	PriceRange   string  `json:"price_range"`
	Size         string  `json:"size"`
	Rooms        string  `json:"rooms"`
	Location     string  `json:"location" binding:"required"`
}

// UpdateLeadStatusRequest moves a lead along its lifecycle
type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new contacted converted closed"`
}

// PostMessageRequest appends a message to a lead thread
type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateLead records a tenant inquiry. The lead is linked to the
// authenticated tenant when one is present.
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	input := services.CreateLeadInput{
		TenantName:   req.TenantName,
		TenantEmail:  req.TenantEmail,
		TenantPhone:  req.TenantPhone,
		PropertyType: req.PropertyType,
		PriceRange:   req.PriceRange,
		Size:         req.Size,
		Rooms:        req.Rooms,
		Location:     req.Location,
	}
	if userID := middleware.GetUserID(c); userID != uuid.Nil && middleware.GetUserRole(c) == models.RoleTenant {
		input.TenantID = &userID
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), input)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	metrics.RecordLeadCreated()
	SuccessResponse(c, http.StatusCreated, "Lead created", lead)
}

// ListLeads returns all leads, newest first
func (h *LeadHandler) ListLeads(c *gin.Context) {
	leads, err := h.leadService.ListLeads(c.Request.Context())
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Leads retrieved", leads)
}

// GetLead returns a single lead by ID
func (h *LeadHandler) GetLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid lead ID", err)
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), leadID)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Lead retrieved", lead)
}

// UpdateStatus advances a lead's status. Only forward transitions are
// allowed; posting messages never changes status.
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid lead ID", err)
		return
	}

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	lead, err := h.leadService.UpdateStatus(c.Request.Context(), leadID, req.Status)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Lead status updated", lead)
}

// PostMessage appends a message to the lead's thread
func (h *LeadHandler) PostMessage(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid lead ID", err)
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var senderID *uuid.UUID
	if userID := middleware.GetUserID(c); userID != uuid.Nil {
		senderID = &userID
	}

	message, err := h.leadService.PostMessage(c.Request.Context(), leadID, senderID, req.Content)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Message posted", message)
}

// ListMessages returns the lead's messages in ascending time order
func (h *LeadHandler) ListMessages(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid lead ID", err)
		return
	}

	messages, err := h.leadService.ListMessages(c.Request.Context(), leadID)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Messages retrieved", messages)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rento-service/internal/middleware"
	"rento-service/internal/services"
)

// ComplaintHandler handles complaint endpoints
type ComplaintHandler struct {
	complaintService *services.ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// FileComplaintRequest is the complaint submission payload
type FileComplaintRequest struct {
	PropertyID  *uuid.UUID `json:"property_id"`
	Subject     string     `json:"subject" binding:"required"`
	Description string     `json:"description" binding:"required"`
}

// AdvanceComplaintRequest moves a complaint along its lifecycle
type AdvanceComplaintRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress resolved"`
}

// FileComplaint files a complaint for the authenticated tenant
func (h *ComplaintHandler) FileComplaint(c *gin.Context) {
	var req FileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	complaint, err := h.complaintService.FileComplaint(c.Request.Context(), middleware.GetUserID(c), services.FileComplaintInput{
		PropertyID:  req.PropertyID,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Complaint filed", complaint)
}

// AdvanceStatus moves a complaint forward through its lifecycle
func (h *ComplaintHandler) AdvanceStatus(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid complaint ID", err)
		return
	}

	var req AdvanceComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	complaint, err := h.complaintService.AdvanceStatus(c.Request.Context(), complaintID, req.Status)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Complaint updated", complaint)
}

// ListMyComplaints returns the authenticated tenant's complaints
func (h *ComplaintHandler) ListMyComplaints(c *gin.Context) {
	complaints, err := h.complaintService.TenantComplaints(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Complaints retrieved", complaints)
}

// ListOpenComplaints returns all unresolved complaints
func (h *ComplaintHandler) ListOpenComplaints(c *gin.Context) {
	complaints, err := h.complaintService.OpenComplaints(c.Request.Context())
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Complaints retrieved", complaints)
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rento-service/internal/middleware"
	"rento-service/internal/models"
	"rento-service/internal/repository"
	"rento-service/internal/services"
)

// PropertyHandler handles property, tenancy and viewing endpoints
type PropertyHandler struct {
	propertyService *services.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// PropertyRequest is the create/update payload for a listing
type PropertyRequest struct {
	Name         string       `json:"name" binding:"required"`
	Address      string       `json:"address" binding:"required"`
	Location     string       `json:"location" binding:"required"`
	PropertyType string       `json:"property_type" binding:"required"`
	Rent         float64      `json:"rent" binding:"required,gt=0"`
	Rooms        int          `json:"rooms"`
	Size         string       `json:"size"`
	Images       models.JSONB `json:"images"`
}

// AssignTenantRequest links a tenant to a property
type AssignTenantRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
}

// RequestViewingRequest schedules a property viewing
type RequestViewingRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Note        string    `json:"note"`
}

// RespondViewingRequest confirms or declines a viewing request
type RespondViewingRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed declined"`
}

func (h *PropertyHandler) toInput(req PropertyRequest) services.CreatePropertyInput {
	return services.CreatePropertyInput{
		Name:         req.Name,
		Address:      req.Address,
		Location:     req.Location,
		PropertyType: req.PropertyType,
		Rent:         req.Rent,
		Rooms:        req.Rooms,
		Size:         req.Size,
		Images:       req.Images,
	}
}

// CreateProperty registers a new listing owned by the caller
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), middleware.GetUserID(c), h.toInput(req))
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Property created", property)
}

// GetProperty returns a single listing
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID", err)
		return
	}

	property, err := h.propertyService.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Property retrieved", property)
}

// UpdateProperty updates a listing owned by the caller
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID", err)
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), middleware.GetUserID(c), propertyID, h.toInput(req))
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Property updated", property)
}

// ListOwnProperties returns the caller's listings
func (h *PropertyHandler) ListOwnProperties(c *gin.Context) {
	properties, err := h.propertyService.ListOwnProperties(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Properties retrieved", properties)
}

// ListAvailable returns available listings, optionally filtered by
// location, property type and maximum rent
func (h *PropertyHandler) ListAvailable(c *gin.Context) {
	filter := repository.PropertyFilter{
		Location:     c.Query("location"),
		PropertyType: c.Query("property_type"),
	}
	if maxRent := c.Query("max_rent"); maxRent != "" {
		if v, err := strconv.ParseFloat(maxRent, 64); err == nil {
			filter.MaxRent = v
		}
	}

	properties, err := h.propertyService.ListAvailable(c.Request.Context(), filter)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Properties retrieved", properties)
}

// AssignTenant places a tenant in a property and marks it occupied
func (h *PropertyHandler) AssignTenant(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID", err)
		return
	}

	var req AssignTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	assignment, err := h.propertyService.AssignTenant(c.Request.Context(), middleware.GetUserID(c), propertyID, req.TenantID)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Tenant assigned", assignment)
}

// RemoveTenant ends a tenancy and frees the property
func (h *PropertyHandler) RemoveTenant(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID", err)
		return
	}
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid tenant ID", err)
		return
	}

	if err := h.propertyService.RemoveTenant(c.Request.Context(), propertyID, tenantID); err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Tenant removed", nil)
}

// ListManagedTenants returns the tenancy roster across the caller's
// properties
func (h *PropertyHandler) ListManagedTenants(c *gin.Context) {
	assignments, err := h.propertyService.ListManagedTenants(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Tenants retrieved", assignments)
}

// CurrentAssignment returns the authenticated tenant's current
// tenancy, if any
func (h *PropertyHandler) CurrentAssignment(c *gin.Context) {
	assignment, err := h.propertyService.CurrentAssignment(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Assignment retrieved", assignment)
}

// RequestViewing schedules a viewing for the authenticated tenant
func (h *PropertyHandler) RequestViewing(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID", err)
		return
	}

	var req RequestViewingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	viewing, err := h.propertyService.RequestViewing(c.Request.Context(), middleware.GetUserID(c), propertyID, req.ScheduledAt, req.Note)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Viewing requested", viewing)
}

// RespondToViewing confirms or declines a viewing request
func (h *PropertyHandler) RespondToViewing(c *gin.Context) {
	viewingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid viewing ID", err)
		return
	}

	var req RespondViewingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.propertyService.RespondToViewing(c.Request.Context(), viewingID, req.Status); err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Viewing updated", nil)
}

// ListMyViewings returns the authenticated tenant's viewing requests
func (h *PropertyHandler) ListMyViewings(c *gin.Context) {
	viewings, err := h.propertyService.ListTenantViewings(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Viewings retrieved", viewings)
}

// ListPropertyViewings returns the viewing requests for a property
func (h *PropertyHandler) ListPropertyViewings(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID", err)
		return
	}

	viewings, err := h.propertyService.ListPropertyViewings(c.Request.Context(), propertyID)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Viewings retrieved", viewings)
}

package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rento-service/internal/middleware"
	"rento-service/internal/services"
)

// ErrorResponse sends a standardized error response
// Internal errors are logged but not exposed to clients
func ErrorResponse(c *gin.Context, statusCode int, message string, err error) {
	ErrorResponseWithCode(c, statusCode, "", message, err)
}

// ErrorResponseWithCode sends an error response carrying a machine-readable
// error code alongside the message
func ErrorResponseWithCode(c *gin.Context, statusCode int, code string, message string, err error) {
	requestID := getRequestID(c)

	// Log internal error details
	if err != nil {
		log.Printf("[ERROR] [%s] %s: %v", requestID, message, err)
	}

	// Send user-friendly response (don't expose internal errors)
	response := gin.H{
		"success":    false,
		"message":    message,
		"request_id": requestID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	if code != "" {
		response["error_code"] = code
	}

	// Only include error details in development mode
	if gin.Mode() == gin.DebugMode && err != nil {
		response["error_details"] = err.Error()
	}

	c.JSON(statusCode, response)
}

// SuccessResponse sends a standardized success response
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	requestID := getRequestID(c)

	response := gin.H{
		"success":    true,
		"message":    message,
		"request_id": requestID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}

	if data != nil {
		response["data"] = data
	}

	c.JSON(statusCode, response)
}

// ServiceErrorResponse maps the service error taxonomy onto HTTP status
// codes. Unclassified errors become opaque 500s.
func ServiceErrorResponse(c *gin.Context, err error) {
	switch {
	case services.IsValidationError(err):
		ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case services.IsNotFoundError(err):
		ErrorResponse(c, http.StatusNotFound, err.Error(), nil)
	case services.IsConflictError(err):
		ErrorResponse(c, http.StatusConflict, err.Error(), nil)
	case services.IsForbiddenError(err):
		ErrorResponse(c, http.StatusForbidden, err.Error(), nil)
	default:
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// getRequestID retrieves the request ID set by middleware
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(middleware.RequestIDKey); exists {
		return requestID.(string)
	}
	if requestID := c.GetHeader("X-Request-ID"); requestID != "" {
		return requestID
	}
	return time.Now().Format("20060102150405")
}

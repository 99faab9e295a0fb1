package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rento-service/internal/middleware"
	"rento-service/internal/services"
)

// PaymentHandler handles payment and expense endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPaymentRequest is the rent payment payload
type RecordPaymentRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	Amount     float64   `json:"amount" binding:"required,gt=0"`
	Period     string    `json:"period" binding:"required"`
	Method     string    `json:"method"`
}

// RecordExpenseRequest is the expense payload
type RecordExpenseRequest struct {
	Category   string    `json:"category" binding:"required"`
	Amount     float64   `json:"amount" binding:"required,gt=0"`
	Note       string    `json:"note"`
	IncurredAt time.Time `json:"incurred_at"`
}

// RecordPayment records a rent payment for the authenticated tenant
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), middleware.GetUserID(c), services.RecordPaymentInput{
		PropertyID: req.PropertyID,
		Amount:     req.Amount,
		Period:     req.Period,
		Method:     req.Method,
	})
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Payment recorded", payment)
}

// ListMyPayments returns the authenticated tenant's payment history
func (h *PaymentHandler) ListMyPayments(c *gin.Context) {
	payments, err := h.paymentService.TenantPayments(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Payments retrieved", payments)
}

// ListPropertyPayments returns payments recorded against a property
func (h *PaymentHandler) ListPropertyPayments(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid property ID", err)
		return
	}

	payments, err := h.paymentService.PropertyPayments(c.Request.Context(), propertyID)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Payments retrieved", payments)
}

// RecordExpense records a personal expense for the authenticated
// tenant
func (h *PaymentHandler) RecordExpense(c *gin.Context) {
	var req RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	expense, err := h.paymentService.RecordExpense(c.Request.Context(), middleware.GetUserID(c), services.RecordExpenseInput{
		Category:   req.Category,
		Amount:     req.Amount,
		Note:       req.Note,
		IncurredAt: req.IncurredAt,
	})
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Expense recorded", expense)
}

// ListMyExpenses returns the authenticated tenant's expenses
func (h *PaymentHandler) ListMyExpenses(c *gin.Context) {
	expenses, err := h.paymentService.TenantExpenses(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Expenses retrieved", expenses)
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rento-service/internal/models"
)

// PaymentStore is the persistence surface PaymentService needs
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	ListPaymentsByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Payment, error)
	ListPaymentsByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.Payment, error)
	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpensesByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Expense, error)
}

// RecordPaymentInput carries a rent payment submission
type RecordPaymentInput struct {
	PropertyID uuid.UUID `json:"property_id"`
	Amount     float64   `json:"amount"`
	Period     string    `json:"period"`
	Method     string    `json:"method"`
}

// RecordExpenseInput carries an expense submission
type RecordExpenseInput struct {
	Category   string    `json:"category"`
	Amount     float64   `json:"amount"`
	Note       string    `json:"note"`
	IncurredAt time.Time `json:"incurred_at"`
}

// PaymentService owns rent payments and tenant expenses
type PaymentService struct {
	store  PaymentStore
	events EventPublisher
	logger *logrus.Logger
}

// NewPaymentService creates a new payment service. events may be nil.
func NewPaymentService(store PaymentStore, events EventPublisher, logger *logrus.Logger) *PaymentService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PaymentService{store: store, events: events, logger: logger}
}

// RecordPayment validates and stores a rent payment for a tenant
func (s *PaymentService) RecordPayment(ctx context.Context, tenantID uuid.UUID, input RecordPaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 {
		return nil, NewValidationError("amount", "amount must be positive")
	}
	if strings.TrimSpace(input.Period) == "" {
		return nil, NewValidationError("period", "payment period is required")
	}
	if input.PropertyID == uuid.Nil {
		return nil, NewValidationError("property_id", "property is required")
	}

	now := time.Now()
	payment := &models.Payment{
		TenantID:   tenantID,
		PropertyID: input.PropertyID,
		Amount:     input.Amount,
		Period:     input.Period,
		Method:     input.Method,
		Status:     models.PaymentStatusPaid,
		PaidAt:     &now,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.Publish("payment.recorded", map[string]interface{}{
			"payment_id":  payment.ID.String(),
			"property_id": input.PropertyID.String(),
			"amount":      input.Amount,
		}); err != nil {
			s.logger.WithError(err).Warn("failed to publish event")
		}
	}
	return payment, nil
}

// TenantPayments returns a tenant's payment history, newest first
func (s *PaymentService) TenantPayments(ctx context.Context, tenantID uuid.UUID) ([]models.Payment, error) {
	return s.store.ListPaymentsByTenant(ctx, tenantID)
}

// PropertyPayments returns payments against a property, newest first
func (s *PaymentService) PropertyPayments(ctx context.Context, propertyID uuid.UUID) ([]models.Payment, error) {
	return s.store.ListPaymentsByProperty(ctx, propertyID)
}

// RecordExpense validates and stores a tenant expense
func (s *PaymentService) RecordExpense(ctx context.Context, tenantID uuid.UUID, input RecordExpenseInput) (*models.Expense, error) {
	if strings.TrimSpace(input.Category) == "" {
		return nil, NewValidationError("category", "category is required")
	}
	if input.Amount <= 0 {
		return nil, NewValidationError("amount", "amount must be positive")
	}

	incurredAt := input.IncurredAt
	if incurredAt.IsZero() {
		incurredAt = time.Now()
	}
	expense := &models.Expense{
		TenantID:   tenantID,
		Category:   strings.TrimSpace(input.Category),
		Amount:     input.Amount,
		Note:       input.Note,
		IncurredAt: incurredAt,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// TenantExpenses returns a tenant's expenses, newest first
func (s *PaymentService) TenantExpenses(ctx context.Context, tenantID uuid.UUID) ([]models.Expense, error) {
	return s.store.ListExpensesByTenant(ctx, tenantID)
}

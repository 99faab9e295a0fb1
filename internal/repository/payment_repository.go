package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rento-service/internal/models"
)

// PaymentRepository handles payment and expense database operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment inserts a payment record
func (r *PaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// ListPaymentsByTenant returns a tenant's payment history, newest first
func (r *PaymentRepository) ListPaymentsByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments by tenant: %w", err)
	}
	return payments, nil
}

// ListPaymentsByProperty returns payments recorded against a property,
// newest first
func (r *PaymentRepository) ListPaymentsByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments by property: %w", err)
	}
	return payments, nil
}

// CreateExpense inserts a tenant expense record
func (r *PaymentRepository) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListExpensesByTenant returns a tenant's expenses, newest first
func (r *PaymentRepository) ListExpensesByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Expense, error) {
	expenses := []models.Expense{}
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("incurred_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses by tenant: %w", err)
	}
	return expenses, nil
}
